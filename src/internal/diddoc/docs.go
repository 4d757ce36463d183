// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package diddoc models [DID Documents] and assembles them from keys.
//
// A single document embeds one JsonWebKey2020 verification method per key.
// A master list aggregates a [Collection] of documents either by embedding
// their methods or by listing their method ids. All assembly functions are
// pure and keep input order.
//
// [DID Documents]: https://www.w3.org/TR/did-core/
package diddoc
