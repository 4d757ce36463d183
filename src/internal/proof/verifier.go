// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package proof

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/diddoc"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/docloader"
	"github.com/multiformats/go-multibase"
)

var (
	// ErrNoProof is returned for documents without a proof object.
	ErrNoProof = errors.New("proof: document has no proof")
	// ErrUnsupportedProof is returned for proofs of another suite or purpose.
	ErrUnsupportedProof = errors.New("proof: unsupported proof")
	// ErrVerificationMethod is returned when the proof's key cannot be
	// loaded or is not an Ed25519VerificationKey2020.
	ErrVerificationMethod = errors.New("proof: unusable verification method")
	// ErrInvalidSignature is returned when the signature does not match.
	ErrInvalidSignature = errors.New("proof: invalid signature")
)

// VerificationResult is the outcome of [Verifier.Verify].
type VerificationResult struct {
	Verified           bool
	VerificationMethod string
	Error              error
}

// Verifier checks Ed25519Signature2020 proofs.
type Verifier struct {
	suite
}

// NewVerifier returns a Verifier that loads contexts and verification
// methods through loader.
func NewVerifier(loader *docloader.Loader) *Verifier {
	return &Verifier{suite: suite{loader: loader}}
}

// VerifyDocument is [Verifier.Verify] for a typed document.
func (v *Verifier) VerifyDocument(ctx context.Context, doc *diddoc.Document) VerificationResult {
	m, err := doc.ToMap()
	if err != nil {
		return VerificationResult{Error: fmt.Errorf("proof: encode %s: %w", doc.ID, err)}
	}
	return v.Verify(ctx, m)
}

// Verify checks the proof of a signed document in its generic JSON form.
// Verification problems are reported in the result, never panicked or
// returned separately.
func (v *Verifier) Verify(ctx context.Context, doc map[string]any) VerificationResult {
	p, ok := doc["proof"].(map[string]any)
	if !ok {
		return VerificationResult{Error: ErrNoProof}
	}

	vmID, _ := p["verificationMethod"].(string)
	res := VerificationResult{VerificationMethod: vmID}

	if t, _ := p["type"].(string); t != SuiteType {
		res.Error = fmt.Errorf("%w: type %q", ErrUnsupportedProof, t)
		return res
	}
	if purpose, _ := p["proofPurpose"].(string); purpose != PurposeAssertionMethod {
		res.Error = fmt.Errorf("%w: proof purpose %q", ErrUnsupportedProof, purpose)
		return res
	}

	value, _ := p["proofValue"].(string)
	enc, sig, err := multibase.Decode(value)
	if err != nil || enc != multibase.Base58BTC || len(sig) != ed25519.SignatureSize {
		res.Error = fmt.Errorf("%w: malformed proofValue", ErrInvalidSignature)
		return res
	}

	pub, err := v.publicKey(ctx, vmID)
	if err != nil {
		res.Error = err
		return res
	}

	options := make(map[string]any, len(p))
	for k, val := range p {
		if k != "proofValue" {
			options[k] = val
		}
	}
	options["@context"] = doc["@context"]

	body := make(map[string]any, len(doc))
	for k, val := range doc {
		if k != "proof" {
			body[k] = val
		}
	}

	data, err := v.hash(ctx, options, body)
	if err != nil {
		res.Error = err
		return res
	}
	if !ed25519.Verify(pub, data, sig) {
		res.Error = ErrInvalidSignature
		return res
	}

	res.Verified = true
	return res
}

// publicKey loads the verification method and decodes its key.
func (v *Verifier) publicKey(ctx context.Context, vmID string) (ed25519.PublicKey, error) {
	if vmID == "" {
		return nil, fmt.Errorf("%w: proof names no verification method", ErrVerificationMethod)
	}

	remote, err := v.loader.Load(ctx, vmID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrVerificationMethod, vmID, err)
	}
	if remote.Error != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrVerificationMethod, vmID, remote.Error)
	}

	vm, ok := remote.Document.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an object", ErrVerificationMethod, vmID)
	}
	if t, _ := vm["type"].(string); t != TypeEd25519VerificationKey2020 {
		return nil, fmt.Errorf("%w: %s has type %q", ErrVerificationMethod, vmID, t)
	}

	mb, _ := vm["publicKeyMultibase"].(string)
	pub, err := DecodePublicKeyMultibase(mb)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrVerificationMethod, vmID, err)
	}
	return pub, nil
}
