// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keynorm

import (
	"crypto"
	"crypto/x509"
	encasn1 "encoding/asn1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	x509certs "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/chain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// JWK is a JSON Web Key as a generic JSON object. Certificates add an
// "x5c" member holding the issuance chain.
type JWK map[string]any

// X5C returns the certificate chain of the key, if any.
func (k JWK) X5C() []string {
	switch v := k["x5c"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// ParseError reports input that could not be turned into a JWK. Callers
// skip the input and carry on.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keynorm: %s: %v", e.Reason, e.Err)
	}
	return "keynorm: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	oidPublicKeyECDSA = encasn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidCurveSecp256k1 = encasn1.ObjectIdentifier{1, 3, 132, 0, 10}

	errNotSecp256k1 = errors.New("keynorm: not a secp256k1 key")
)

// Normalize converts a PEM blob to a JWK.
//
// Certificates yield the JWK of their public key plus an x5c chain
// resolved against store. Public keys yield the bare JWK. Anything else, and
// any certificate whose chain loops, fails with a [*ParseError].
//
// Parameters:
//   - pemData: PEM encoded certificate or public key
//   - store: Certificates indexed by SKI, may be nil
//
// Returns:
//   - JWK: The normalized key
//   - error: [*ParseError] on unusable input
func Normalize(pemData []byte, store *x509chain.Store) (JWK, error) {
	decoder := x509certs.New()

	switch decoder.Classify(pemData) {
	case x509certs.KindCertificate:
		cert, err := decoder.Decode(pemData)
		if err != nil {
			return nil, &ParseError{Reason: "decode certificate", Err: err}
		}

		key, err := FromPublicKey(cert.PublicKey)
		if err != nil {
			return nil, err
		}

		ch, err := x509chain.Walk(cert, store)
		if err != nil {
			return nil, &ParseError{Reason: "resolve chain", Err: err}
		}

		x5c := make([]string, len(ch.Certs))
		for i, c := range ch.Certs {
			x5c[i] = decoder.EncodeDERBase64(c)
		}
		key["x5c"] = x5c
		return key, nil

	case x509certs.KindPublicKey:
		der, err := decoder.DecodePublicKey(pemData)
		if err != nil {
			return nil, &ParseError{Reason: "decode public key", Err: err}
		}
		return FromSPKI(der)

	default:
		return nil, &ParseError{Reason: "no certificate or public key markers"}
	}
}

// FromSPKI converts a DER SubjectPublicKeyInfo to a JWK. secp256k1 keys,
// which crypto/x509 refuses, are handled separately.
func FromSPKI(der []byte) (JWK, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err == nil {
		return FromPublicKey(pub)
	}

	key, k1err := secp256k1FromSPKI(der)
	if k1err == nil {
		return key, nil
	}
	return nil, &ParseError{Reason: "parse public key", Err: err}
}

// FromPublicKey converts a parsed public key to a JWK.
func FromPublicKey(pub crypto.PublicKey) (JWK, error) {
	key, err := jwk.Import(pub)
	if err != nil {
		return nil, &ParseError{Reason: "unsupported key type", Err: err}
	}

	raw, err := json.Marshal(key)
	if err != nil {
		return nil, &ParseError{Reason: "encode JWK", Err: err}
	}

	var out JWK
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ParseError{Reason: "encode JWK", Err: err}
	}
	return out, nil
}

func secp256k1FromSPKI(der []byte) (JWK, error) {
	var (
		input    = cryptobyte.String(der)
		spki     cryptobyte.String
		algo     cryptobyte.String
		algOID   encasn1.ObjectIdentifier
		curveOID encasn1.ObjectIdentifier
		bits     encasn1.BitString
	)

	if !input.ReadASN1(&spki, cbasn1.SEQUENCE) || !input.Empty() ||
		!spki.ReadASN1(&algo, cbasn1.SEQUENCE) ||
		!algo.ReadASN1ObjectIdentifier(&algOID) ||
		!algo.ReadASN1ObjectIdentifier(&curveOID) ||
		!spki.ReadASN1BitString(&bits) {
		return nil, errNotSecp256k1
	}

	if !algOID.Equal(oidPublicKeyECDSA) || !curveOID.Equal(oidCurveSecp256k1) {
		return nil, errNotSecp256k1
	}

	pub, err := secp256k1.ParsePubKey(bits.RightAlign())
	if err != nil {
		return nil, err
	}

	// 0x04 || X || Y
	point := pub.SerializeUncompressed()
	return JWK{
		"kty": "EC",
		"crv": "secp256k1",
		"x":   base64.RawURLEncoding.EncodeToString(point[1:33]),
		"y":   base64.RawURLEncoding.EncodeToString(point[33:65]),
	}, nil
}
