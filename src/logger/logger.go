// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the interface for logging operations.
//
// Generation runs print human-readable status lines by default and switch to
// structured output when --json-log is set, without callers caring which.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger by writing one JSON object per message.
//
// The level is inferred from the leading status icon of the message, so
// status lines produced by the generator keep their meaning once structured.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewJSONLogger creates a new structured logger writing to writer.
// A nil writer discards everything. Silent suppresses all output.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf formats and logs a structured message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs a structured message.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprint(v...))
}

// SetOutput sets the output destination for the JSON logger.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.writer = w
}

func (j *JSONLogger) write(msg string) {
	level, msg := levelOf(strings.TrimSpace(msg))
	entry := struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}{level, msg}

	data, _ := json.Marshal(entry)

	j.mu.Lock()
	fmt.Fprintln(j.writer, string(data))
	j.mu.Unlock()
}

// levelOf maps a leading status icon to a log level and strips it.
func levelOf(msg string) (string, string) {
	for _, p := range []struct{ icon, level string }{
		{"✖", "error"},
		{"⚠", "warn"},
		{"✔", "info"},
		{"ℹ", "info"},
	} {
		if rest, ok := strings.CutPrefix(msg, p.icon); ok {
			return p.level, strings.TrimSpace(rest)
		}
	}
	return "info", msg
}
