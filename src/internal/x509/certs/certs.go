// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// Kind describes what a PEM blob carries, judged by its armor markers.
type Kind int

const (
	// KindUnknown is anything that is neither a certificate nor a public key.
	KindUnknown Kind = iota
	// KindCertificate is a PEM blob with CERTIFICATE markers.
	KindCertificate
	// KindPublicKey is a PEM blob with PUBLIC KEY markers and no certificate.
	KindPublicKey
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCertificate:
		return "certificate"
	case KindPublicKey:
		return "public key"
	default:
		return "unknown"
	}
}

var (
	certificateMarker = []byte("CERTIFICATE")
	publicKeyMarker   = []byte("PUBLIC KEY")
)

// Certificate provides methods to decode and encode [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType   string
	publicBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType:   "CERTIFICATE",
		publicBlockType: "PUBLIC KEY",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Classify reports whether data is armored as a certificate or as a public
// key. Certificate markers win when both are present.
func (c *Certificate) Classify(data []byte) Kind {
	switch {
	case bytes.Contains(data, certificateMarker):
		return KindCertificate
	case bytes.Contains(data, publicKeyMarker):
		return KindPublicKey
	default:
		return KindUnknown
	}
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte, blockType string) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != blockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// Decode decodes a single certificate from PEM or DER data. A PKCS7 bundle is
// accepted as well, in which case its first certificate is returned.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data, c.certBlockType)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// DecodePublicKey returns the DER encoded SubjectPublicKeyInfo held by a
// PUBLIC KEY block.
func (c *Certificate) DecodePublicKey(data []byte) ([]byte, error) {
	block, err := c.decodePEMBlock(data, c.publicBlockType)
	if err != nil {
		return nil, err
	}
	return block.Bytes, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDERBase64 returns the standard base64 form of the certificate's DER
// bytes, which is the PEM body without armor and line breaks. This is the
// representation used by the x5c member of a JWK.
func (c *Certificate) EncodeDERBase64(cert *x509.Certificate) string {
	return base64.StdEncoding.EncodeToString(cert.Raw)
}

// SubjectKeyID returns the lowercase hex subject key identifier, or "" when
// the extension is absent.
func SubjectKeyID(cert *x509.Certificate) string { return hex.EncodeToString(cert.SubjectKeyId) }

// AuthorityKeyID returns the lowercase hex authority key identifier, or ""
// when the extension is absent.
func AuthorityKeyID(cert *x509.Certificate) string { return hex.EncodeToString(cert.AuthorityKeyId) }

// IsSelfSigned reports whether the certificate names itself as its issuer by
// key identifier. Signatures are not checked.
func IsSelfSigned(cert *x509.Certificate) bool {
	return len(cert.SubjectKeyId) > 0 && bytes.Equal(cert.SubjectKeyId, cert.AuthorityKeyId)
}
