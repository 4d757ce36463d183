// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `targets:
  - name: production
    source: keys/prod
    destination: /srv/www/prod
    rootDid: did:web:example.com:tl
signerKeyFile: signer.json
duplicateSkiPolicy: reject
resolver:
  timeoutSeconds: 3
contexts:
  https://www.w3.org/ns/did/v1: contexts/did-v1.jsonld
logFormat: json
`

const jsonConfig = `{
  "targets": [
    {"name": "test", "source": "keys/test", "destination": "out", "rootDid": "did:web:example.com:tl:test"}
  ],
  "signerKeyFile": "signer.json"
}`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Resolver.Timeout())
	assert.Error(t, cfg.Validate(), "no targets")
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", yamlConfig)
	dir := filepath.Dir(path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, config.Target{
		Name:        "production",
		Source:      filepath.Join(dir, "keys/prod"),
		Destination: "/srv/www/prod",
		RootDID:     "did:web:example.com:tl",
	}, cfg.Targets[0])
	assert.Equal(t, filepath.Join(dir, "signer.json"), cfg.SignerKeyFile)
	assert.Equal(t, "reject", cfg.DuplicateSKIPolicy)
	assert.Equal(t, 3*time.Second, cfg.Resolver.Timeout())
	assert.Equal(t, filepath.Join(dir, "contexts/did-v1.jsonld"), cfg.Contexts["https://www.w3.org/ns/did/v1"])
	assert.Equal(t, config.LogFormatJSON, cfg.LogFormat)
}

func TestLoadJSONFromEnv(t *testing.T) {
	path := writeConfig(t, "config.json", jsonConfig)
	t.Setenv(config.EnvConfigFile, path)
	t.Setenv("DID_TRUST_SKI_POLICY", "reject")
	t.Setenv("DID_TRUST_RESOLVER_TIMEOUT_SECONDS", "7")
	t.Setenv("DID_TRUST_USER_AGENT", "registry-bot/1.0")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "test", cfg.Targets[0].Name)
	assert.Equal(t, "reject", cfg.DuplicateSKIPolicy)
	assert.Equal(t, 7*time.Second, cfg.Resolver.Timeout())
	assert.Equal(t, "registry-bot/1.0", cfg.Resolver.UserAgent)
	assert.Equal(t, config.LogFormatText, cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "c.yml", "targets: [\n"},
		{"bad json", "c.json", "{"},
		{"bad policy", "c.json", `{"duplicateSkiPolicy": "first-wins"}`},
		{"bad log format", "c.yaml", "logFormat: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestTargetValidate(t *testing.T) {
	valid := config.Target{Name: "p", Source: "s", Destination: "d", RootDID: "did:web:example.com:tl"}

	tests := []struct {
		name    string
		mutate  func(*config.Target)
		wantErr bool
	}{
		{"valid", func(*config.Target) {}, false},
		{"missing name", func(t *config.Target) { t.Name = "" }, true},
		{"missing source", func(t *config.Target) { t.Source = "" }, true},
		{"not a did", func(t *config.Target) { t.RootDID = "https://example.com" }, true},
		{"fragment", func(t *config.Target) { t.RootDID = "did:web:example.com#k" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := valid
			tt.mutate(&target)
			err := target.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRejectsInvalidTargetInList(t *testing.T) {
	cfg := config.Default()
	cfg.SignerKeyFile = "signer.json"
	cfg.Targets = []config.Target{{Name: "p", Source: "s", Destination: "d", RootDID: "nope"}}
	assert.Error(t, cfg.Validate())
}
