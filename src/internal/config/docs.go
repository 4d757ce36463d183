// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads generator settings from a JSON or YAML file, a .env
// file and DID_TRUST_* environment variables.
//
// Example YAML configuration:
//
//	targets:
//	  - name: production
//	    source: keys/prod
//	    destination: public/prod
//	    rootDid: did:web:example.com:tl
//	signerKeyFile: signer.json
//	duplicateSkiPolicy: last-wins
//	resolver:
//	  timeoutSeconds: 10
//	contexts:
//	  https://www.w3.org/ns/did/v1: contexts/did-v1.jsonld
//	logFormat: text
//
// Environment overrides:
//
//	DID_TRUST_CONFIG_FILE               path of the configuration file
//	DID_TRUST_SIGNER_KEY_FILE           signerKeyFile
//	DID_TRUST_SKI_POLICY                duplicateSkiPolicy
//	DID_TRUST_RESOLVER_TIMEOUT_SECONDS  resolver.timeoutSeconds
//	DID_TRUST_USER_AGENT                resolver.userAgent
//	DID_TRUST_LOG_FORMAT                logFormat
package config
