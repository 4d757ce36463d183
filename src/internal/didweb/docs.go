// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package didweb resolves [did:web] identifiers.
//
// An identifier is mapped to an HTTPS URL, the document is fetched with a
// versioned User-Agent, and a fragment, if present, selects one verification
// method. Resolution problems are returned as data in [Result] so that a
// failed lookup never aborts a batch.
//
// [did:web]: https://w3c-ccg.github.io/did-method-web/
package didweb
