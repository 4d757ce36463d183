// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package docloader loads JSON-LD contexts and DID documents for proof
// creation and verification.
//
// A [Loader] answers from a run-scoped [Cache] first. Pinned documents are
// served without network access, did:web URLs go through DID resolution and
// everything else goes through the json-gold network loader.
//
// Example usage:
//
//	cache := docloader.NewCache()
//	loader := docloader.New(docloader.WithCache(cache), docloader.WithLogger(log))
//	if err := loader.PinFile("https://www.w3.org/ns/did/v1", "contexts/did-v1.jsonld"); err != nil {
//		return err
//	}
//
//	opts := ld.NewJsonLdOptions("")
//	opts.DocumentLoader = loader.WithContext(ctx)
//
// A failed did:web resolution is not a Go error: [Loader.Load] logs it and
// returns a [RemoteDocument] whose Error field is set. json-gold sees it as
// a loading failure.
package docloader
