// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package proof

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/docloader"
	"github.com/piprate/json-gold/ld"
)

const (
	// SuiteType is the proof type produced and accepted.
	SuiteType = "Ed25519Signature2020"
	// SuiteContext defines the terms of [SuiteType].
	SuiteContext = "https://w3id.org/security/suites/ed25519-2020/v1"
	// PurposeAssertionMethod is the only proof purpose used.
	PurposeAssertionMethod = "assertionMethod"
)

// suite holds what signing and verification share: the loader behind
// canonicalization.
type suite struct {
	loader *docloader.Loader
}

// canonicalize returns the URDNA2015 N-Quads of doc.
func (s *suite) canonicalize(ctx context.Context, doc map[string]any) ([]byte, error) {
	opts := ld.NewJsonLdOptions("")
	opts.ProcessingMode = ld.JsonLd_1_1
	opts.Algorithm = ld.AlgorithmURDNA2015
	opts.Format = "application/n-quads"
	opts.DocumentLoader = s.loader.WithContext(ctx)

	view, err := ld.NewJsonLdProcessor().Normalize(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("proof: canonicalize: %w", err)
	}
	out, ok := view.(string)
	if !ok {
		return nil, errors.New("proof: canonicalize: unexpected normalization result")
	}
	return []byte(out), nil
}

// hash returns sha256(canon(options)) || sha256(canon(doc)), the data
// covered by the signature. options must already carry the document's
// @context and must not carry proofValue.
func (s *suite) hash(ctx context.Context, options, doc map[string]any) ([]byte, error) {
	canonOptions, err := s.canonicalize(ctx, options)
	if err != nil {
		return nil, err
	}
	canonDoc, err := s.canonicalize(ctx, doc)
	if err != nil {
		return nil, err
	}

	optionsHash := sha256.Sum256(canonOptions)
	docHash := sha256.Sum256(canonDoc)
	return append(optionsHash[:], docHash[:]...), nil
}
