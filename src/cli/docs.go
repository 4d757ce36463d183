// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the DID trust registry
// generator. It implements a Cobra-based CLI with four commands: generate
// publishes the configured targets, verify checks signed documents, chain
// shows the certificate chain a key would carry in x5c, and keygen creates a
// signing key pair. Status lines go through the logger package, as text or
// as JSON under --log-format json.
package cli
