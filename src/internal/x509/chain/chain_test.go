// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/testutil"
	x509chain "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) logger.Logger {
	l := logger.NewCLILogger()
	l.SetOutput(buf)
	return l
}

func TestIndex(t *testing.T) {
	root := testutil.NewCertificate(t, "Root", "aa01", "aa01")
	leaf := testutil.NewCertificate(t, "Leaf", "bb02", "aa01")
	noSKI := testutil.NewCertificate(t, "NoSKI", "", "aa01")

	var buf bytes.Buffer
	store, err := x509chain.Index([]x509chain.Blob{
		{Name: "root.pem", PEM: root.PEM},
		{Name: "leaf.pem", PEM: leaf.PEM},
		{Name: "noski.pem", PEM: noSKI.PEM},
		{Name: "junk.pem", PEM: []byte("junk")},
	}, x509chain.WithLogger(newLogger(&buf)))
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())

	rec, ok := store.Lookup("aa01")
	require.True(t, ok)
	assert.True(t, rec.SelfSigned)
	assert.Equal(t, "root.pem", rec.Source)
	assert.Equal(t, root.PEM, rec.PEM)

	rec, ok = store.Lookup("bb02")
	require.True(t, ok)
	assert.False(t, rec.SelfSigned)
	assert.Equal(t, "aa01", rec.AKI)

	assert.Contains(t, buf.String(), "skipping noski.pem")
	assert.Contains(t, buf.String(), "skipping junk.pem")
}

func TestIndexCollisions(t *testing.T) {
	first := testutil.NewCertificate(t, "First", "aa01", "aa01")
	second := testutil.NewCertificate(t, "Second", "aa01", "aa01")

	t.Run("identical duplicates are not a collision", func(t *testing.T) {
		store, err := x509chain.Index([]x509chain.Blob{
			{Name: "a.pem", PEM: first.PEM},
			{Name: "b.pem", PEM: first.PEM},
		}, x509chain.WithCollisionPolicy(x509chain.Reject))
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("last wins", func(t *testing.T) {
		var buf bytes.Buffer
		store, err := x509chain.Index([]x509chain.Blob{
			{Name: "a.pem", PEM: first.PEM},
			{Name: "b.pem", PEM: second.PEM},
		}, x509chain.WithLogger(newLogger(&buf)))
		require.NoError(t, err)

		rec, ok := store.Lookup("aa01")
		require.True(t, ok)
		assert.Equal(t, "b.pem", rec.Source)
		assert.Contains(t, buf.String(), "b.pem replaces a.pem")
	})

	t.Run("reject", func(t *testing.T) {
		_, err := x509chain.Index([]x509chain.Blob{
			{Name: "a.pem", PEM: first.PEM},
			{Name: "b.pem", PEM: second.PEM},
		}, x509chain.WithCollisionPolicy(x509chain.Reject))

		var dup *x509chain.DuplicateSKIError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "aa01", dup.SKI)
		assert.Equal(t, "a.pem", dup.First)
		assert.Equal(t, "b.pem", dup.Second)
	})
}

func TestWalk(t *testing.T) {
	root := testutil.NewCertificate(t, "Root", "aa01", "aa01")
	inter := testutil.NewCertificate(t, "Intermediate", "bb02", "aa01")
	leaf := testutil.NewCertificate(t, "Leaf", "cc03", "bb02")
	orphan := testutil.NewCertificate(t, "Orphan", "dd04", "ee05")
	bare := testutil.NewCertificate(t, "Bare", "ff06", "")

	store, err := x509chain.Index([]x509chain.Blob{
		{Name: "root.pem", PEM: root.PEM},
		{Name: "inter.pem", PEM: inter.PEM},
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		issued      *testutil.Issued
		wantSubject []string
		missing     string
	}{
		{"full chain", leaf, []string{"Leaf", "Intermediate", "Root"}, ""},
		{"self-signed", root, []string{"Root"}, ""},
		{"unknown issuer", orphan, []string{"Orphan"}, "ee05"},
		{"no aki", bare, []string{"Bare"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := x509chain.Walk(tt.issued.Cert, store)
			require.NoError(t, err)

			var subjects []string
			for _, c := range ch.Certs {
				subjects = append(subjects, c.Subject.CommonName)
			}
			assert.Equal(t, tt.wantSubject, subjects)
			assert.Equal(t, tt.missing, ch.MissingIssuer)
		})
	}
}

func TestWalkNilStore(t *testing.T) {
	leaf := testutil.NewCertificate(t, "Leaf", "cc03", "bb02")
	ch, err := x509chain.Walk(leaf.Cert, nil)
	require.NoError(t, err)
	assert.Len(t, ch.Certs, 1)
}

func TestWalkCycle(t *testing.T) {
	a := testutil.NewCertificate(t, "A", "aa01", "bb02")
	b := testutil.NewCertificate(t, "B", "bb02", "aa01")

	store, err := x509chain.Index([]x509chain.Blob{
		{Name: "a.pem", PEM: a.PEM},
		{Name: "b.pem", PEM: b.PEM},
	})
	require.NoError(t, err)

	_, err = x509chain.Walk(a.Cert, store)

	var cycle *x509chain.ChainCycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"aa01", "bb02", "aa01"}, cycle.Path)
}

func TestResolve(t *testing.T) {
	root := testutil.NewCertificate(t, "Root", "aa01", "aa01")
	leaf := testutil.NewCertificate(t, "Leaf", "bb02", "aa01")

	store, err := x509chain.Index([]x509chain.Blob{{Name: "root.pem", PEM: root.PEM}})
	require.NoError(t, err)

	x5c, err := x509chain.Resolve(leaf.PEM, store)
	require.NoError(t, err)
	assert.Equal(t, []string{
		base64.StdEncoding.EncodeToString(leaf.Cert.Raw),
		base64.StdEncoding.EncodeToString(root.Cert.Raw),
	}, x5c)

	_, err = x509chain.Resolve([]byte("junk"), store)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	root := testutil.NewCertificate(t, "Root", "aa01aa01aa01", "aa01aa01aa01")
	leaf := testutil.NewCertificate(t, "Leaf", "bb02", "aa01aa01aa01")
	orphan := testutil.NewCertificate(t, "Orphan", "dd04", "ee05")

	store, err := x509chain.Index([]x509chain.Blob{{Name: "root.pem", PEM: root.PEM}})
	require.NoError(t, err)

	ch, err := x509chain.Walk(leaf.Cert, store)
	require.NoError(t, err)

	t.Run("tree", func(t *testing.T) {
		tree := ch.RenderASCIITree()
		assert.Equal(t, "├── [bb02] Leaf (Leaf)\n└── [aa01aa01] Root (Root CA)\n", tree)
	})

	t.Run("tree with missing issuer", func(t *testing.T) {
		gap, err := x509chain.Walk(orphan.Cert, store)
		require.NoError(t, err)
		assert.Contains(t, gap.RenderASCIITree(), "[ee05] ? (issuer not in store)")
	})

	t.Run("table", func(t *testing.T) {
		table := ch.RenderTable()
		assert.Contains(t, table, "Leaf")
		assert.Contains(t, table, "Root CA")
		assert.Contains(t, table, "aa01aa01aa01")
		assert.Contains(t, table, "ECDSA P-256")
	})

	t.Run("json", func(t *testing.T) {
		data, err := ch.ToVisualizationJSON()
		require.NoError(t, err)

		var got struct {
			ChainLength  int `json:"chainLength"`
			Certificates []struct {
				Role string `json:"role"`
				SKI  string `json:"ski"`
			} `json:"certificates"`
		}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 2, got.ChainLength)
		assert.Equal(t, "Leaf", got.Certificates[0].Role)
		assert.Equal(t, "aa01aa01aa01", got.Certificates[1].SKI)
	})

	t.Run("empty", func(t *testing.T) {
		empty := &x509chain.Chain{}
		assert.Equal(t, "No certificates in chain", empty.RenderASCIITree())
		assert.Equal(t, "No certificates to display", empty.RenderTable())
	})
}
