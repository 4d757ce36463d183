// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package testutil provides fixtures for tests that need certificates with
// hand-picked key identifiers and files laid out on disk.
//
// Certificates are self-issued so that crypto/x509 copies the template's
// Authority Key Identifier verbatim instead of deriving it from a parent:
//
//	root := testutil.NewCertificate(t, "Root", "aa01", "aa01")
//	leaf := testutil.NewCertificate(t, "Leaf", "bb02", "aa01")
//	path := testutil.WriteFile(t, dir, "root.pem", root.PEM)
package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Issued is a generated certificate.
type Issued struct {
	Cert *x509.Certificate
	PEM  []byte
	Key  crypto.Signer
}

// NewCertificate returns a P-256 certificate with the given hex SKI and AKI.
// An empty string omits the extension.
func NewCertificate(t testing.TB, commonName, ski, aki string) *Issued {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: commonName},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	if ski != "" {
		tmpl.SubjectKeyId = mustHex(t, ski)
	}
	if aki != "" {
		tmpl.AuthorityKeyId = mustHex(t, aki)
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return &Issued{
		Cert: cert,
		PEM:  pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		Key:  key,
	}
}

// PublicKeyPEM encodes pub as a PUBLIC KEY block.
func PublicKeyPEM(t testing.TB, pub crypto.PublicKey) []byte {
	t.Helper()

	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

// WriteFile writes data to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
