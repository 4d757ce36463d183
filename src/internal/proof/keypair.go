// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package proof

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/multiformats/go-multibase"
)

// TypeEd25519VerificationKey2020 is the verification method type of signer
// keys.
const TypeEd25519VerificationKey2020 = "Ed25519VerificationKey2020"

// Multicodec prefixes (unsigned varint) of multibase encoded keys.
var (
	prefixEd25519Pub  = []byte{0xed, 0x01}
	prefixEd25519Priv = []byte{0x80, 0x26}
)

var (
	// ErrInvalidKey is returned for key material that does not decode to an
	// Ed25519 key.
	ErrInvalidKey = errors.New("proof: invalid Ed25519 key material")
	// ErrKeyMismatch is returned when the private key does not belong to the
	// public key of a key pair.
	ErrKeyMismatch = errors.New("proof: private key does not match public key")
)

// KeyPair is an Ed25519VerificationKey2020 key pair as stored on disk.
type KeyPair struct {
	ID                  string `json:"id"`
	Controller          string `json:"controller"`
	Type                string `json:"type"`
	PublicKeyMultibase  string `json:"publicKeyMultibase"`
	PrivateKeyMultibase string `json:"privateKeyMultibase,omitempty"`

	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// ParseKeyPair decodes a JSON key pair and checks that both halves belong
// together. The private key may be a 32-byte seed or the 64-byte expanded
// form.
//
// Parameters:
//   - data: JSON encoded key pair
//
// Returns:
//   - *KeyPair: Decoded key pair
//   - error: [ErrInvalidKey] or [ErrKeyMismatch] wrapped with context
func ParseKeyPair(data []byte) (*KeyPair, error) {
	var kp KeyPair
	if err := json.Unmarshal(data, &kp); err != nil {
		return nil, fmt.Errorf("proof: decode key pair: %w", err)
	}
	if kp.Type == "" {
		kp.Type = TypeEd25519VerificationKey2020
	}
	if kp.Type != TypeEd25519VerificationKey2020 {
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidKey, kp.Type)
	}
	if kp.ID == "" || kp.Controller == "" {
		return nil, fmt.Errorf("%w: id and controller are required", ErrInvalidKey)
	}

	pub, err := DecodePublicKeyMultibase(kp.PublicKeyMultibase)
	if err != nil {
		return nil, err
	}
	priv, err := decodePrivateKeyMultibase(kp.PrivateKeyMultibase)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(priv.Public().(ed25519.PublicKey), pub) {
		return nil, ErrKeyMismatch
	}

	kp.public = pub
	kp.private = priv
	return &kp, nil
}

// LoadKeyPair reads a key pair file.
func LoadKeyPair(path string) (*KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("proof: read key pair: %w", err)
	}
	return ParseKeyPair(data)
}

// GenerateKeyPair creates a new key pair with the given verification method
// id and controller. A nil r uses crypto/rand.
func GenerateKeyPair(id, controller string, r io.Reader) (*KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	pub, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, fmt.Errorf("proof: generate key: %w", err)
	}

	pubMB, err := multibase.Encode(multibase.Base58BTC, append(bytes.Clone(prefixEd25519Pub), pub...))
	if err != nil {
		return nil, err
	}
	privMB, err := multibase.Encode(multibase.Base58BTC, append(bytes.Clone(prefixEd25519Priv), priv...))
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		ID:                  id,
		Controller:          controller,
		Type:                TypeEd25519VerificationKey2020,
		PublicKeyMultibase:  pubMB,
		PrivateKeyMultibase: privMB,
		public:              pub,
		private:             priv,
	}, nil
}

// PublicKey returns the raw public key.
func (kp *KeyPair) PublicKey() ed25519.PublicKey { return kp.public }

// Public returns a copy of the key pair without its private half, suitable
// for publishing as a verification method.
func (kp *KeyPair) Public() *KeyPair {
	return &KeyPair{
		ID:                 kp.ID,
		Controller:         kp.Controller,
		Type:               kp.Type,
		PublicKeyMultibase: kp.PublicKeyMultibase,
		public:             kp.public,
	}
}

// DecodePublicKeyMultibase decodes a base58btc multibase Ed25519 public key
// with its multicodec prefix.
func DecodePublicKeyMultibase(s string) (ed25519.PublicKey, error) {
	raw, err := decodeMultibase(s, prefixEd25519Pub)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrInvalidKey, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key is %d bytes", ErrInvalidKey, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

func decodePrivateKeyMultibase(s string) (ed25519.PrivateKey, error) {
	raw, err := decodeMultibase(s, prefixEd25519Priv)
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %v", ErrInvalidKey, err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		priv := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(priv[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, ErrKeyMismatch
		}
		return priv, nil
	default:
		return nil, fmt.Errorf("%w: private key is %d bytes", ErrInvalidKey, len(raw))
	}
}

func decodeMultibase(s string, prefix []byte) ([]byte, error) {
	enc, raw, err := multibase.Decode(s)
	if err != nil {
		return nil, err
	}
	if enc != multibase.Base58BTC {
		return nil, fmt.Errorf("expected base58btc, got %s", multibase.EncodingToStr[enc])
	}
	body, ok := bytes.CutPrefix(raw, prefix)
	if !ok {
		return nil, fmt.Errorf("missing multicodec prefix %x", prefix)
	}
	return body, nil
}
