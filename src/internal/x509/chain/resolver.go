// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"fmt"
	"strings"

	x509certs "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/certs"
)

// ChainCycleError reports an issuance chain that revisits a certificate.
type ChainCycleError struct {
	// Path lists the Subject Key Identifiers walked, ending with the
	// identifier that was seen twice.
	Path []string
}

func (e *ChainCycleError) Error() string {
	return fmt.Sprintf("x509chain: issuance cycle: %s", strings.Join(e.Path, " -> "))
}

// Chain is a resolved issuance chain, leaf first.
type Chain struct {
	Certs []*x509.Certificate

	// MissingIssuer holds the Authority Key Identifier the walk stopped at
	// when the issuer was not in the store. The chain is still usable, only
	// shorter.
	MissingIssuer string
}

// Walk follows Authority Key Identifiers from cert through the store.
//
// The walk ends when the current certificate has no AKI, names itself as its
// issuer, or names an issuer the store does not know. Each Subject Key
// Identifier may be visited once.
//
// Parameters:
//   - cert: Starting certificate (leaf)
//   - store: Certificates indexed by SKI, may be nil
//
// Returns:
//   - *Chain: Certificates from leaf to the last resolvable issuer
//   - error: [*ChainCycleError] if an identifier repeats
func Walk(cert *x509.Certificate, store *Store) (*Chain, error) {
	ch := &Chain{Certs: []*x509.Certificate{cert}}
	visited := make(map[string]struct{})
	var path []string

	for cur := cert; ; {
		ski := x509certs.SubjectKeyID(cur)
		if ski != "" {
			visited[ski] = struct{}{}
			path = append(path, ski)
		}

		aki := x509certs.AuthorityKeyID(cur)
		if aki == "" || aki == ski {
			return ch, nil
		}

		if _, seen := visited[aki]; seen {
			return nil, &ChainCycleError{Path: append(path, aki)}
		}

		rec, ok := store.Lookup(aki)
		if !ok {
			ch.MissingIssuer = aki
			return ch, nil
		}

		ch.Certs = append(ch.Certs, rec.Cert)
		cur = rec.Cert
	}
}

// Resolve decodes a PEM certificate and returns its chain as base64 DER
// strings, leaf first, ready for use as an x5c value.
//
// Parameters:
//   - pemData: PEM (or DER) encoded leaf certificate
//   - store: Certificates indexed by SKI
//
// Returns:
//   - []string: Standard base64 DER of each certificate in the chain
//   - error: Decode failure or [*ChainCycleError]
func Resolve(pemData []byte, store *Store) ([]string, error) {
	decoder := x509certs.New()
	cert, err := decoder.Decode(pemData)
	if err != nil {
		return nil, err
	}

	ch, err := Walk(cert, store)
	if err != nil {
		return nil, err
	}

	x5c := make([]string, len(ch.Certs))
	for i, c := range ch.Certs {
		x5c[i] = decoder.EncodeDERBase64(c)
	}
	return x5c, nil
}
