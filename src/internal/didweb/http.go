// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package didweb

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HTTPConfig holds HTTP client configuration for DID and context fetches.
type HTTPConfig struct {
	Timeout   time.Duration     // HTTP request timeout
	Version   string            // Application version for User-Agent
	UserAgent string            // Custom User-Agent string, if empty will be constructed from Version
	Transport http.RoundTripper // Optional transport, nil uses http.DefaultTransport

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with default values.
//
// It initializes the configuration with a default timeout of 10 seconds
// and the provided application version.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *HTTPConfig: New HTTP configuration
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: 10 * time.Second,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("DID-Trust-Registry/%s (+https://github.com/H0llyW00dzZ/did-trust-registry)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// It creates or reuses an http.Client, ensuring it uses the configured
// timeout and transport.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout, Transport: c.Transport}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}
	if c.client.Transport != c.Transport {
		c.client.Transport = c.Transport
	}

	return c.client
}
