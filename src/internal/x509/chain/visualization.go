// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	x509certs "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/certs"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the chain as an ASCII tree diagram.
//
// Each line shows the certificate's common name, its role and a shortened
// Subject Key Identifier. A chain that stopped at an unknown issuer ends
// with a line naming the missing Authority Key Identifier.
//
// Returns:
//   - string: ASCII tree representation of the chain
func (ch *Chain) RenderASCIITree() string {
	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 && ch.MissingIssuer == "" {
			connector = "└── "
		}

		fmt.Fprintf(&result, "%s[%s] %s (%s)\n", connector,
			shortID(x509certs.SubjectKeyID(cert)), cert.Subject.CommonName, ch.role(i))
	}

	if ch.MissingIssuer != "" {
		fmt.Fprintf(&result, "└── [%s] ? (issuer not in store)\n", shortID(ch.MissingIssuer))
	}

	return result.String()
}

// RenderTable renders the chain as a markdown table.
//
// Returns:
//   - string: Markdown table with role, subject, key identifiers, expiry and key type
func (ch *Chain) RenderTable() string {
	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "SKI", "AKI", "Valid Until", "Key"})

	var rows [][]string
	for i, cert := range ch.Certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.role(i),
			cert.Subject.CommonName,
			x509certs.SubjectKeyID(cert),
			x509certs.AuthorityKeyID(cert),
			cert.NotAfter.Format("2006-01-02"),
			keyDescription(cert),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts the chain to structured JSON for external tools.
//
// Returns:
//   - []byte: Indented JSON document
//   - error: Error if JSON marshaling fails
func (ch *Chain) ToVisualizationJSON() ([]byte, error) {
	type certificateData struct {
		Index     int       `json:"index"`
		Role      string    `json:"role"`
		Subject   string    `json:"subject"`
		Issuer    string    `json:"issuer"`
		SKI       string    `json:"ski,omitempty"`
		AKI       string    `json:"aki,omitempty"`
		Key       string    `json:"key"`
		NotBefore time.Time `json:"notBefore"`
		NotAfter  time.Time `json:"notAfter"`
		IsCA      bool      `json:"isCA"`
	}

	type visualizationData struct {
		ChainLength   int               `json:"chainLength"`
		MissingIssuer string            `json:"missingIssuer,omitempty"`
		Certificates  []certificateData `json:"certificates"`
	}

	data := visualizationData{
		ChainLength:   len(ch.Certs),
		MissingIssuer: ch.MissingIssuer,
		Certificates:  make([]certificateData, len(ch.Certs)),
	}

	for i, cert := range ch.Certs {
		data.Certificates[i] = certificateData{
			Index:     i,
			Role:      ch.role(i),
			Subject:   cert.Subject.CommonName,
			Issuer:    cert.Issuer.CommonName,
			SKI:       x509certs.SubjectKeyID(cert),
			AKI:       x509certs.AuthorityKeyID(cert),
			Key:       keyDescription(cert),
			NotBefore: cert.NotBefore,
			NotAfter:  cert.NotAfter,
			IsCA:      cert.IsCA,
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

// role describes the position of the certificate at index in the chain.
func (ch *Chain) role(index int) string {
	total := len(ch.Certs)
	last := index == total-1
	switch {
	case total == 1 && x509certs.IsSelfSigned(ch.Certs[0]):
		return "Self-Signed"
	case index == 0:
		return "Leaf"
	case last && x509certs.IsSelfSigned(ch.Certs[index]):
		return "Root CA"
	default:
		return "Intermediate CA"
	}
}

func keyDescription(cert *x509.Certificate) string {
	switch k := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", k.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("ECDSA %s", k.Curve.Params().Name)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return "unknown"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
