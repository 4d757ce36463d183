// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package diddoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// ContextDIDCore is the DID Core v1 JSON-LD context.
	ContextDIDCore = "https://www.w3.org/ns/did/v1"
	// ContextJWS2020 is the JSON Web Signature 2020 suite context that
	// defines JsonWebKey2020.
	ContextJWS2020 = "https://w3id.org/security/suites/jws-2020/v1"

	// TypeJsonWebKey2020 is the verification method type of embedded keys.
	TypeJsonWebKey2020 = "JsonWebKey2020"
)

// ErrInvalidVerificationMethod is returned when a verificationMethod entry is
// neither a string nor an object.
var ErrInvalidVerificationMethod = errors.New("diddoc: verification method must be a string or an object")

// Document is a DID Document. Field order is the serialization order.
type Document struct {
	Context            []string                `json:"@context"`
	ID                 string                  `json:"id"`
	VerificationMethod []VerificationMethodRef `json:"verificationMethod"`
	Proof              *Proof                  `json:"proof,omitempty"`
}

// VerificationMethod is an embedded key.
type VerificationMethod struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Controller   string         `json:"controller"`
	PublicKeyJwk map[string]any `json:"publicKeyJwk"`
}

// Proof is a Linked Data proof. Created and ProofValue change on every
// signing and are ignored when documents are compared.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue,omitempty"`
}

// WrappedKey pairs a key identifier with its JWK.
type WrappedKey struct {
	Kid          string
	PublicKeyJwk map[string]any
}

// VerificationMethodRef is either an embedded [VerificationMethod] or a
// reference to one by its DID URL. Exactly one of the two is set.
type VerificationMethodRef struct {
	embedded  *VerificationMethod
	reference string
}

// Embedded wraps a full verification method.
func Embedded(vm VerificationMethod) VerificationMethodRef {
	return VerificationMethodRef{embedded: &vm}
}

// Reference wraps a DID URL pointing at a verification method.
func Reference(didURL string) VerificationMethodRef {
	return VerificationMethodRef{reference: didURL}
}

// Embedded returns the embedded method, if this is one.
func (r VerificationMethodRef) Embedded() (VerificationMethod, bool) {
	if r.embedded == nil {
		return VerificationMethod{}, false
	}
	return *r.embedded, true
}

// ID returns the DID URL of the method in either form.
func (r VerificationMethodRef) ID() string {
	if r.embedded != nil {
		return r.embedded.ID
	}
	return r.reference
}

// MarshalJSON emits an object for embedded methods and a string for references.
// '&', '<' and '>' are written unescaped so that DID URLs and JWK members
// appear in the output exactly as in the input.
func (r VerificationMethodRef) MarshalJSON() ([]byte, error) {
	var v any = r.reference
	if r.embedded != nil {
		v = r.embedded
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON accepts either form.
func (r *VerificationMethodRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidVerificationMethod
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Reference(s)
	case '{':
		var vm VerificationMethod
		if err := json.Unmarshal(data, &vm); err != nil {
			return fmt.Errorf("diddoc: %w", err)
		}
		*r = Embedded(vm)
	default:
		return ErrInvalidVerificationMethod
	}
	return nil
}

// Find returns the embedded method whose id equals didURL.
func (d *Document) Find(didURL string) (VerificationMethod, bool) {
	for _, ref := range d.VerificationMethod {
		if vm, ok := ref.Embedded(); ok && vm.ID == didURL {
			return vm, true
		}
	}
	return VerificationMethod{}, false
}

// Clone returns a deep copy of the document. JWK members are copied through
// a JSON round trip so later mutation of either copy is invisible to the other.
func (d *Document) Clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToMap converts the document to its generic JSON object form.
func (d *Document) ToMap() (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
