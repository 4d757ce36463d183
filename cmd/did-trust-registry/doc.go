// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command did-trust-registry publishes a directory of X.509 certificates and
// JSON Web Key Sets as a did:web trust registry.
//
// Usage:
//
//	did-trust-registry generate --config registry.yaml
//	did-trust-registry verify public/s/ml/e/did.json
//	did-trust-registry chain leaf.pem --store ./keys
//	did-trust-registry keygen --id did:web:example.com#signer --controller did:web:example.com
//
// SIGINT and SIGTERM cancel a running command; the process then exits with
// status 130. Any other failure exits with status 1.
package main
