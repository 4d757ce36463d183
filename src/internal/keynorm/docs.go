// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package keynorm turns PEM certificates and public keys into JSON Web Keys.
//
// Supported key types are EC on P-256, P-384, P-521 and secp256k1, RSA and
// Ed25519. Certificate keys carry their issuance chain in the x5c member,
// leaf first, as resolved by package x509chain.
package keynorm
