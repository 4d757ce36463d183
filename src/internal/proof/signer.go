// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package proof

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"slices"
	"time"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/diddoc"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/docloader"
	"github.com/multiformats/go-multibase"
)

// Signer adds Ed25519Signature2020 proofs with one bound key pair.
type Signer struct {
	suite
	key   *KeyPair
	clock func() time.Time
}

// SignerOption configures a [Signer].
type SignerOption func(*Signer)

// WithClock sets the time source for the created member.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) { s.clock = now }
}

// NewSigner returns a Signer for key. The loader resolves the contexts of
// the documents being signed.
func NewSigner(key *KeyPair, loader *docloader.Loader, opts ...SignerOption) *Signer {
	s := &Signer{suite: suite{loader: loader}, key: key, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KeyID returns the verification method id proofs point to.
func (s *Signer) KeyID() string { return s.key.ID }

// Sign returns a signed copy of doc. Any existing proof is replaced and the
// suite context is appended to @context when missing. doc is not modified.
//
// Parameters:
//   - ctx: Context for context document loading
//   - doc: Document to sign
//
// Returns:
//   - *diddoc.Document: Signed copy
//   - error: Missing private key, canonicalization or encoding failure
func (s *Signer) Sign(ctx context.Context, doc *diddoc.Document) (*diddoc.Document, error) {
	if len(s.key.private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: %s has no private key", ErrInvalidKey, s.key.ID)
	}

	signed, err := doc.Clone()
	if err != nil {
		return nil, fmt.Errorf("proof: copy %s: %w", doc.ID, err)
	}
	signed.Proof = nil
	if !slices.Contains(signed.Context, SuiteContext) {
		signed.Context = append(signed.Context, SuiteContext)
	}

	body, err := signed.ToMap()
	if err != nil {
		return nil, fmt.Errorf("proof: encode %s: %w", doc.ID, err)
	}

	p := &diddoc.Proof{
		Type:               SuiteType,
		Created:            s.clock().UTC().Truncate(time.Second).Format(time.RFC3339),
		VerificationMethod: s.key.ID,
		ProofPurpose:       PurposeAssertionMethod,
	}
	options := map[string]any{
		"@context":           body["@context"],
		"type":               p.Type,
		"created":            p.Created,
		"verificationMethod": p.VerificationMethod,
		"proofPurpose":       p.ProofPurpose,
	}

	data, err := s.hash(ctx, options, body)
	if err != nil {
		return nil, err
	}

	value, err := multibase.Encode(multibase.Base58BTC, ed25519.Sign(s.key.private, data))
	if err != nil {
		return nil, fmt.Errorf("proof: encode signature: %w", err)
	}
	p.ProofValue = value
	signed.Proof = p
	return signed, nil
}
