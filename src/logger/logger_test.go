// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("✔ %s", "k1.pem")

				assert.Equal(t, "✔ k1.pem\n", buf.String())
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Contains(t, buf1.String(), "first")
				assert.Contains(t, buf2.String(), "second")
				assert.NotContains(t, buf1.String(), "second")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestJSONLogger(t *testing.T) {
	tests := []struct {
		name    string
		message string
		level   string
		want    string
	}{
		{"plain", "Finished", "info", "Finished"},
		{"ok icon", "✔ K1.pem", "info", "K1.pem"},
		{"warn icon", "⚠ skipping notes.txt", "warn", "skipping notes.txt"},
		{"error icon", "✖ broken.pem: cycle", "error", "broken.pem: cycle"},
		{"escaping", `bad "quote"` + "\t", "info", `bad "quote"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewJSONLogger(&buf, false)
			log.Println(tt.message)

			var entry map[string]string
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.want, entry["message"])
		})
	}
}

func TestJSONLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewJSONLogger(&buf, true)
	log.Printf("hidden %d", 1)
	log.Println("hidden")
	assert.Empty(t, buf.String())
}

func TestJSONLoggerNilWriter(t *testing.T) {
	log := logger.NewJSONLogger(nil, false)
	assert.NotPanics(t, func() { log.Println("discarded") })
}

func TestJSONLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewJSONLogger(&buf, false)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("message %d", i)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), "invalid line %q", line)
	}
}

func TestStatusLines(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name  string
		print func(l logger.Logger, format string, v ...any)
		want  string
	}{
		{"info", logger.Infof, "ℹ 3 certificates indexed\n"},
		{"ok", logger.OKf, "✔ 3 certificates indexed\n"},
		{"warn", logger.Warnf, "⚠ 3 certificates indexed\n"},
		{"fail", logger.Failf, "✖ 3 certificates indexed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewCLILogger()
			log.SetOutput(&buf)

			tt.print(log, "%d certificates indexed", 3)
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		assert.NotPanics(t, func() { logger.OKf(nil, "ignored") })
	})
}
