// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix_test

import (
	"os"
	"runtime"
	"testing"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/helper/posix"
	"github.com/stretchr/testify/assert"
)

func TestGetExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Relative path", []string{"./did-trust-registry"}, "did-trust-registry"},
		{"Just filename", []string{"registry"}, "registry"},
		{"Windows path", []string{`C:\Program Files\registry\did-trust-registry.exe`}, "did-trust-registry"},
		{"Windows path without extension", []string{`C:\tools\registry`}, "registry"},
		{"Empty args", []string{}, posix.DefaultExecutableName},
		{"Empty first arg", []string{""}, posix.DefaultExecutableName},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			name     string
			args     []string
			expected string
		}{"Unix absolute path", []string{"/usr/local/bin/did-trust-registry"}, "did-trust-registry"})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			os.Args = tt.args
			defer func() { os.Args = orig }()

			assert.Equal(t, tt.expected, posix.GetExecutableName())
		})
	}
}
