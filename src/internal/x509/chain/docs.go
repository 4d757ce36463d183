// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain resolves [X.509] issuance chains against a local store.
// It provides capabilities to:
//   - Index a set of PEM certificates by Subject Key Identifier with a
//     configurable policy for duplicate identifiers.
//   - Walk from a leaf to its root by following Authority Key Identifiers,
//     stopping on self-signed certificates, unknown issuers and cycles.
//   - Render a resolved chain as an ASCII tree, a markdown table or JSON.
//
// No signature or validity checks are performed; linkage is by key
// identifier only.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
