// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExecutableName is returned when os.Args carries no program name.
const DefaultExecutableName = "did-trust-registry"

// GetExecutableName returns the name the program was invoked as, without
// directories or a .exe suffix, for use in cobra Use and Example strings.
//
// Both separators are honored on every platform, so a Windows path seen on
// a Unix system still yields its last element:
//   - "/usr/local/bin/did-trust-registry" → "did-trust-registry"
//   - "C:\bin\did-trust-registry.exe" → "did-trust-registry"
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return DefaultExecutableName
	}

	name := filepath.Base(os.Args[0])
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")

	if name == "" || name == "." {
		return DefaultExecutableName
	}
	return name
}
