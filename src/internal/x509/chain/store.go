// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"fmt"

	x509certs "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
)

// CollisionPolicy decides what happens when two different certificates
// share a Subject Key Identifier.
type CollisionPolicy string

const (
	// LastWins keeps the certificate indexed last and logs a warning.
	LastWins CollisionPolicy = "last-wins"
	// Reject fails indexing with a [DuplicateSKIError].
	Reject CollisionPolicy = "reject"
)

// Blob is a PEM encoded input together with the name it was read from.
type Blob struct {
	Name string
	PEM  []byte
}

// Record is an indexed certificate.
type Record struct {
	SKI        string // lowercase hex
	AKI        string // lowercase hex, empty when absent
	SelfSigned bool
	Source     string
	PEM        []byte
	Cert       *x509.Certificate
}

// DuplicateSKIError reports two different certificates with the same
// Subject Key Identifier under the [Reject] policy.
type DuplicateSKIError struct {
	SKI    string
	First  string
	Second string
}

func (e *DuplicateSKIError) Error() string {
	return fmt.Sprintf("x509chain: duplicate subject key identifier %s in %s and %s", e.SKI, e.First, e.Second)
}

// Store maps Subject Key Identifiers to certificates.
//
// A Store is built once per run by [Index] and is read-only afterwards.
type Store struct {
	records map[string]*Record
}

// Option configures [Index].
type Option func(*indexer)

type indexer struct {
	log    logger.Logger
	policy CollisionPolicy
}

// WithLogger sets the logger used for skipped blobs and replaced entries.
func WithLogger(l logger.Logger) Option {
	return func(ix *indexer) { ix.log = l }
}

// WithCollisionPolicy sets the duplicate identifier policy. An empty policy
// selects [LastWins].
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(ix *indexer) {
		if p != "" {
			ix.policy = p
		}
	}
}

// Index builds a [Store] from PEM blobs.
//
// Blobs that do not decode to a certificate and certificates without a
// Subject Key Identifier are skipped with a warning. Byte-identical
// duplicates are silently collapsed.
//
// Parameters:
//   - blobs: PEM inputs in the order they were read
//   - opts: Logger and collision policy
//
// Returns:
//   - *Store: The populated store
//   - error: [*DuplicateSKIError] under the [Reject] policy
func Index(blobs []Blob, opts ...Option) (*Store, error) {
	ix := &indexer{policy: LastWins}
	for _, opt := range opts {
		opt(ix)
	}

	decoder := x509certs.New()
	store := &Store{records: make(map[string]*Record, len(blobs))}

	for _, blob := range blobs {
		cert, err := decoder.Decode(blob.PEM)
		if err != nil {
			logger.Warnf(ix.log, "skipping %s: %v", blob.Name, err)
			continue
		}

		ski := x509certs.SubjectKeyID(cert)
		if ski == "" {
			logger.Warnf(ix.log, "skipping %s: no subject key identifier", blob.Name)
			continue
		}

		if prev, ok := store.records[ski]; ok && !bytes.Equal(prev.Cert.Raw, cert.Raw) {
			if ix.policy == Reject {
				return nil, &DuplicateSKIError{SKI: ski, First: prev.Source, Second: blob.Name}
			}
			logger.Warnf(ix.log, "%s replaces %s for subject key identifier %s", blob.Name, prev.Source, ski)
		}

		store.records[ski] = &Record{
			SKI:        ski,
			AKI:        x509certs.AuthorityKeyID(cert),
			SelfSigned: x509certs.IsSelfSigned(cert),
			Source:     blob.Name,
			PEM:        blob.PEM,
			Cert:       cert,
		}
	}

	return store, nil
}

// Lookup returns the record indexed under ski.
func (s *Store) Lookup(ski string) (*Record, bool) {
	if s == nil {
		return nil, false
	}
	r, ok := s.records[ski]
	return r, ok
}

// Len returns the number of indexed certificates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}
