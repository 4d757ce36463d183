// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package proof signs and verifies DID documents with Ed25519Signature2020
// Linked Data proofs.
//
// The signed data is the SHA-256 hash of the URDNA2015 canonical proof
// options followed by the SHA-256 hash of the canonical document without its
// proof. The signature is stored as a base58btc multibase proofValue.
// Canonicalization is done by json-gold, with contexts supplied by a
// [docloader.Loader].
//
// Example usage:
//
//	key, err := proof.LoadKeyPair("signer.json")
//	if err != nil {
//		return err
//	}
//	signer := proof.NewSigner(key, loader)
//	signed, err := signer.Sign(ctx, doc)
//
//	res := proof.NewVerifier(loader).VerifyDocument(ctx, signed)
//	if !res.Verified {
//		return res.Error
//	}
//
// Key pairs are JSON objects with id, controller, type, publicKeyMultibase
// and privateKeyMultibase members. Keys carry the ed25519-pub (0xed01) and
// ed25519-priv (0x8026) multicodec prefixes.
package proof
