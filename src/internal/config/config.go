// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "DID_TRUST_CONFIG_FILE"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	configFormatJSON configFormat = iota
	configFormatYAML
)

var didPattern = regexp.MustCompile(`^did:[a-z0-9]+:[^#?\s]+$`)

// Target is one key tree to publish.
type Target struct {
	// Name labels the target in logs and reports.
	Name string `json:"name" yaml:"name"`
	// Source is the directory holding certificates and key sets.
	Source string `json:"source" yaml:"source"`
	// Destination is the directory the DID documents are written to.
	Destination string `json:"destination" yaml:"destination"`
	// RootDID prefixes every generated DID, e.g. did:web:example.com:tl.
	RootDID string `json:"rootDid" yaml:"rootDid"`
}

// Validate checks a single target.
func (t Target) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Source, validation.Required),
		validation.Field(&t.Destination, validation.Required),
		validation.Field(&t.RootDID,
			validation.Required,
			validation.Match(didPattern).Error("must be a DID without fragment or query"),
		),
	)
}

// Resolver configures HTTP access for DID and context resolution.
type Resolver struct {
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	// UserAgent replaces the versioned default when set.
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
}

// Validate checks the resolver settings.
func (r Resolver) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TimeoutSeconds, validation.Min(1)),
	)
}

// Timeout returns TimeoutSeconds as a duration.
func (r Resolver) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Config is the generator configuration.
//
// It is loaded from a JSON or YAML file named by --config or
// DID_TRUST_CONFIG_FILE, with defaults applied for missing values and
// environment variables taking precedence over the file.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	Targets []Target `json:"targets" yaml:"targets"`
	// SignerKeyFile is the Ed25519VerificationKey2020 key pair used for
	// signed documents.
	SignerKeyFile string `json:"signerKeyFile" yaml:"signerKeyFile"`
	// DuplicateSKIPolicy is "last-wins" or "reject".
	DuplicateSKIPolicy string   `json:"duplicateSkiPolicy" yaml:"duplicateSkiPolicy"`
	Resolver           Resolver `json:"resolver" yaml:"resolver"`
	// Contexts pins JSON-LD context URLs to local files.
	Contexts map[string]string `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	// LogFormat is "text" or "json".
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DuplicateSKIPolicy: "last-wins",
		Resolver:           Resolver{TimeoutSeconds: 10},
		LogFormat:          LogFormatText,
	}
}

// Load loads the configuration.
//
// Parameters:
//   - configPath: Path to the configuration file, may be empty
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Read, parse or validation failure
//
// Configuration Priority:
//  1. Default values are set
//  2. A .env file in the working directory or a parent is loaded
//  3. DID_TRUST_CONFIG_FILE is checked if configPath is empty
//  4. Config file values override defaults
//  5. DID_TRUST_* environment variables override config file values
//
// Relative paths in the file are taken relative to the file's directory.
// Targets are not required here; see [Config.Validate].
func Load(configPath string) (*Config, error) {
	loadDotEnv()

	config := Default()

	if configPath == "" {
		configPath = env.GetString(EnvConfigFile, "")
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
		config.resolvePaths(filepath.Dir(configPath))

		if config.Resolver.TimeoutSeconds <= 0 {
			config.Resolver.TimeoutSeconds = 10
		}
		if config.DuplicateSKIPolicy == "" {
			config.DuplicateSKIPolicy = "last-wins"
		}
		if config.LogFormat == "" {
			config.LogFormat = LogFormatText
		}
	}

	config.SignerKeyFile = env.GetString("DID_TRUST_SIGNER_KEY_FILE", config.SignerKeyFile)
	config.DuplicateSKIPolicy = env.GetString("DID_TRUST_SKI_POLICY", config.DuplicateSKIPolicy)
	config.Resolver.TimeoutSeconds = env.GetInt("DID_TRUST_RESOLVER_TIMEOUT_SECONDS", config.Resolver.TimeoutSeconds)
	config.Resolver.UserAgent = env.GetString("DID_TRUST_USER_AGENT", config.Resolver.UserAgent)
	config.LogFormat = env.GetString("DID_TRUST_LOG_FORMAT", config.LogFormat)

	if err := config.validateSettings(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Validate checks everything a generate run needs, including at least one
// target and a signer key file.
func (c *Config) Validate() error {
	if err := c.validateSettings(); err != nil {
		return err
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Targets, validation.Required),
		validation.Field(&c.SignerKeyFile, validation.Required),
	)
}

func (c *Config) validateSettings() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DuplicateSKIPolicy, validation.In("last-wins", "reject")),
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
		validation.Field(&c.Resolver),
	)
}

// resolvePaths makes relative file paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	for i := range c.Targets {
		c.Targets[i].Source = rel(c.Targets[i].Source)
		c.Targets[i].Destination = rel(c.Targets[i].Destination)
	}
	c.SignerKeyFile = rel(c.SignerKeyFile)
	for url, p := range c.Contexts {
		c.Contexts[url] = rel(p)
	}
}

// detectConfigFormat determines the configuration file format based on file
// extension, case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadDotEnv searches for a .env file from the current directory up to the
// root directory and loads the first one found. Variables already set in the
// environment win.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
