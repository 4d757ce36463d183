// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package diddoc_test

import (
	"encoding/json"
	"testing"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/diddoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ecKey(x string) map[string]any {
	return map[string]any{"kty": "EC", "crv": "P-256", "x": x, "y": "y-" + x}
}

func TestAssembleSingle(t *testing.T) {
	const controller = "did:web:example.com"

	tests := []struct {
		name    string
		keys    []diddoc.WrappedKey
		wantIDs []string
	}{
		{
			name:    "self-signed certificate",
			keys:    []diddoc.WrappedKey{{Kid: "K1", PublicKeyJwk: ecKey("a")}},
			wantIDs: []string{"did:web:example.com#K1"},
		},
		{
			name: "order preserved and kid verbatim",
			keys: []diddoc.WrappedKey{
				{Kid: "zz", PublicKeyJwk: ecKey("z")},
				{Kid: "pgM4dDtABSg%3D", PublicKeyJwk: ecKey("p")},
				{Kid: "aa", PublicKeyJwk: ecKey("a")},
			},
			wantIDs: []string{
				"did:web:example.com#zz",
				"did:web:example.com#pgM4dDtABSg%3D",
				"did:web:example.com#aa",
			},
		},
		{
			name: "no keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := diddoc.AssembleSingle(controller, tt.keys)

			assert.Equal(t, []string{diddoc.ContextDIDCore, diddoc.ContextJWS2020}, doc.Context)
			assert.Equal(t, controller, doc.ID)
			assert.Nil(t, doc.Proof)
			require.Len(t, doc.VerificationMethod, len(tt.wantIDs))

			for i, ref := range doc.VerificationMethod {
				vm, ok := ref.Embedded()
				require.True(t, ok)
				assert.Equal(t, tt.wantIDs[i], vm.ID)
				assert.Equal(t, diddoc.TypeJsonWebKey2020, vm.Type)
				assert.Equal(t, controller, vm.Controller)
				assert.Equal(t, tt.keys[i].PublicKeyJwk, vm.PublicKeyJwk)
			}
		})
	}
}

func TestAssembleCollection(t *testing.T) {
	coll := diddoc.NewCollection()
	coll.Set("did:web:r:u:k:b", diddoc.AssembleSingle("did:web:r:u:k:b", []diddoc.WrappedKey{
		{Kid: "b1", PublicKeyJwk: ecKey("b1")},
		{Kid: "b2", PublicKeyJwk: ecKey("b2")},
	}))
	coll.Set("did:web:r:u:k:a", diddoc.AssembleSingle("did:web:r:u:k:a", []diddoc.WrappedKey{
		{Kid: "a1", PublicKeyJwk: ecKey("a1")},
	}))
	coll.Set("did:web:r:u:k:c", diddoc.AssembleSingle("did:web:r:u:k:c", []diddoc.WrappedKey{
		{Kid: "b1", PublicKeyJwk: ecKey("b1")},
	}))

	wantIDs := []string{
		"did:web:r:u:k:b#b1",
		"did:web:r:u:k:b#b2",
		"did:web:r:u:k:a#a1",
		"did:web:r:u:k:c#b1",
	}

	embed := diddoc.AssembleCollectionEmbed("did:web:r:u:ml:e", coll)
	ref := diddoc.AssembleCollectionReference("did:web:r:u:ml:r", coll)

	assert.Equal(t, "did:web:r:u:ml:e", embed.ID)
	assert.Equal(t, "did:web:r:u:ml:r", ref.ID)
	require.Len(t, embed.VerificationMethod, len(wantIDs))
	require.Len(t, ref.VerificationMethod, len(wantIDs))

	for i := range wantIDs {
		vm, ok := embed.VerificationMethod[i].Embedded()
		require.True(t, ok, "embed entry %d", i)
		assert.Equal(t, wantIDs[i], vm.ID)

		_, ok = ref.VerificationMethod[i].Embedded()
		assert.False(t, ok, "reference entry %d", i)

		// embed[i].id == reference[i]
		assert.Equal(t, embed.VerificationMethod[i].ID(), ref.VerificationMethod[i].ID())
	}

	t.Run("mode helper matches", func(t *testing.T) {
		assert.Equal(t, embed, diddoc.AssembleCollection("did:web:r:u:ml:e", coll, diddoc.Embed))
		assert.Equal(t, ref, diddoc.AssembleCollection("did:web:r:u:ml:r", coll, diddoc.ByReference))
	})

	t.Run("empty collection", func(t *testing.T) {
		doc := diddoc.AssembleCollectionEmbed("did:web:r:u:ml:e", diddoc.NewCollection())
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"@context":["https://www.w3.org/ns/did/v1","https://w3id.org/security/suites/jws-2020/v1"],"id":"did:web:r:u:ml:e","verificationMethod":[]}`, string(data))
	})
}

func TestCollection(t *testing.T) {
	coll := diddoc.NewCollection()
	first := &diddoc.Document{ID: "one"}
	replaced := &diddoc.Document{ID: "one again"}

	coll.Set("did:1", first)
	coll.Set("did:2", &diddoc.Document{ID: "two"})
	coll.Set("did:1", replaced)

	assert.Equal(t, 2, coll.Len())
	got, ok := coll.Get("did:1")
	require.True(t, ok)
	assert.Same(t, replaced, got)

	var keys []string
	for k := range coll.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"did:1", "did:2"}, keys)
}

func TestVerificationMethodRefJSON(t *testing.T) {
	const input = `{
  "@context": ["https://www.w3.org/ns/did/v1"],
  "id": "did:web:example.com",
  "verificationMethod": [
    {"id": "did:web:example.com#k", "type": "JsonWebKey2020", "controller": "did:web:example.com", "publicKeyJwk": {"kty": "OKP"}},
    "did:web:other.example#k2"
  ],
  "proof": {"type": "Ed25519Signature2020", "created": "2024-01-01T00:00:00Z", "verificationMethod": "did:web:example.com#s", "proofPurpose": "assertionMethod", "proofValue": "z1"}
}`

	var doc diddoc.Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	require.Len(t, doc.VerificationMethod, 2)

	vm, ok := doc.Find("did:web:example.com#k")
	require.True(t, ok)
	assert.Equal(t, "OKP", vm.PublicKeyJwk["kty"])

	_, ok = doc.Find("did:web:other.example#k2")
	assert.False(t, ok, "references are not embedded methods")
	assert.Equal(t, "did:web:other.example#k2", doc.VerificationMethod[1].ID())
	require.NotNil(t, doc.Proof)
	assert.Equal(t, "assertionMethod", doc.Proof.ProofPurpose)

	out, err := json.Marshal(&doc)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))

	t.Run("no HTML escaping", func(t *testing.T) {
		tests := []struct {
			name string
			ref  diddoc.VerificationMethodRef
			want string
		}{
			{
				name: "reference",
				ref:  diddoc.Reference("did:web:example.com#a&b<c>"),
				want: `"did:web:example.com#a&b<c>"`,
			},
			{
				name: "embedded",
				ref: diddoc.Embedded(diddoc.VerificationMethod{
					ID:           "did:web:example.com#a&b",
					Type:         diddoc.TypeJsonWebKey2020,
					Controller:   "did:web:example.com",
					PublicKeyJwk: map[string]any{"kty": "EC", "kid": "<k&1>"},
				}),
				want: `"did:web:example.com#a&b"`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				out, err := tt.ref.MarshalJSON()
				require.NoError(t, err)
				assert.Contains(t, string(out), tt.want)
				assert.NotContains(t, string(out), `\u0026`)
				assert.NotContains(t, string(out), "\n")
			})
		}
	})

	t.Run("invalid entry", func(t *testing.T) {
		var bad diddoc.Document
		err := json.Unmarshal([]byte(`{"verificationMethod":[42]}`), &bad)
		assert.ErrorIs(t, err, diddoc.ErrInvalidVerificationMethod)
	})
}

func TestClone(t *testing.T) {
	doc := diddoc.AssembleSingle("did:web:example.com", []diddoc.WrappedKey{{Kid: "k", PublicKeyJwk: ecKey("x")}})
	clone, err := doc.Clone()
	require.NoError(t, err)

	vm, _ := clone.VerificationMethod[0].Embedded()
	vm.PublicKeyJwk["x"] = "changed"

	orig, _ := doc.VerificationMethod[0].Embedded()
	assert.Equal(t, "x", orig.PublicKeyJwk["x"])

	m, err := doc.ToMap()
	require.NoError(t, err)
	assert.Equal(t, "did:web:example.com", m["id"])
	assert.NotContains(t, m, "proof")
}
