// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"github.com/fatih/color"
)

// Status icons printed in front of per-file status lines.
const (
	IconInfo = "ℹ"
	IconOK   = "✔"
	IconWarn = "⚠"
	IconFail = "✖"
)

var (
	infoColor = color.New(color.FgBlue)
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

// Infof prints an informational status line.
func Infof(l Logger, format string, v ...any) { statusf(l, infoColor, IconInfo, format, v...) }

// OKf prints a status line for an accepted item.
func OKf(l Logger, format string, v ...any) { statusf(l, okColor, IconOK, format, v...) }

// Warnf prints a status line for a skipped item.
func Warnf(l Logger, format string, v ...any) { statusf(l, warnColor, IconWarn, format, v...) }

// Failf prints a status line for a failed item.
func Failf(l Logger, format string, v ...any) { statusf(l, failColor, IconFail, format, v...) }

// statusf colours only the icon. Colours follow color.NoColor at call time,
// which is off for non-TTY output and must be forced off for JSONLogger.
func statusf(l Logger, c *color.Color, icon, format string, v ...any) {
	if l == nil {
		return
	}
	l.Printf(c.Sprint(icon)+" "+format, v...)
}
