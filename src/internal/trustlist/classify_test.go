// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustlist_test

import (
	"errors"
	"testing"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/trustlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want trustlist.Kind
	}{
		{"keys/DE/dsc.pem", trustlist.Certificate},
		{"keys/DE/DSC.PEM", trustlist.Ignored},
		{"keys/shc/jwks.json", trustlist.CredentialKeySet},
		{"keys/shc/jwks.JSON", trustlist.Ignored},
		{"keys/DE/dsc.pem.bak", trustlist.Ignored},
		{"keys/README.md", trustlist.Ignored},
		{"keys/noext", trustlist.Ignored},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, trustlist.Classify(tt.path))
		})
	}
	assert.Equal(t, "key set", trustlist.CredentialKeySet.String())
}

func TestKid(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"stem", "keys/DE/pgM4dDtABSg=.pem", "pgM4dDtABSg=", false},
		{"only last extension", "keys/a.b.json", "a.b", false},
		{"nfc", "keys/Mu\u0308nchen.pem", "M\u00fcnchen", false},
		{"empty stem", "keys/.pem", "", true},
		{"dot dot", "keys/...pem", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kid, err := trustlist.Kid(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kid)
		})
	}
}

func TestKeySet(t *testing.T) {
	keys, err := trustlist.KeySet([]byte(`{"keys": [
		{"kty": "EC", "kid": "b", "crv": "P-256"},
		{"kty": "RSA", "kid": "a", "n": "AQAB"}
	]}`))
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "b", keys[0].Kid)
	assert.Equal(t, "a", keys[1].Kid)
	assert.Equal(t, "AQAB", keys[1].PublicKeyJwk["n"])
	assert.Equal(t, "a", keys[1].PublicKeyJwk["kid"], "the whole key is kept")
}

func TestKeySetRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		skip bool
	}{
		{"not json", `{"keys": [`, false},
		{"no keys", `{"issuer": "x"}`, true},
		{"empty keys", `{"keys": []}`, true},
		{"key without kid", `{"keys": [{"kty": "EC"}]}`, true},
		{"key not an object", `{"keys": ["x"]}`, true},
		{"array", `[1, 2]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trustlist.KeySet([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, tt.skip, errors.Is(err, trustlist.ErrClassificationSkip))
		})
	}
}
