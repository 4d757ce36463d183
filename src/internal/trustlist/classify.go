// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/diddoc"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/unicode/norm"
)

// Kind is the classification of a source file.
type Kind int

const (
	// Ignored files are neither certificates nor JSON.
	Ignored Kind = iota
	// Certificate files end in .pem and hold one certificate or public key.
	Certificate
	// CredentialKeySet files end in .json and hold a JSON Web Key Set.
	CredentialKeySet
)

func (k Kind) String() string {
	switch k {
	case Certificate:
		return "certificate"
	case CredentialKeySet:
		return "key set"
	default:
		return "ignored"
	}
}

// ErrClassificationSkip is returned for .json files that are not credential
// key sets.
var ErrClassificationSkip = errors.New("trustlist: not a credential key set")

// errInvalidKid is returned for file names that cannot serve as a path
// segment.
var errInvalidKid = errors.New("trustlist: file name is not a usable key identifier")

// keySetSchema accepts {"keys": [{"kty": ..., "kid": ...}, ...]} with at
// least one key.
var keySetSchema = mustSchema(`{
  "type": "object",
  "required": ["keys"],
  "properties": {
    "keys": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["kty", "kid"],
        "properties": {
          "kty": {"type": "string", "minLength": 1},
          "kid": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("trustlist: key set schema: %v", err))
	}
	return schema
}

// Classify returns the kind of the file at path, judged by its extension.
// Extensions match case-sensitively: K1.PEM is ignored.
func Classify(path string) Kind {
	switch filepath.Ext(path) {
	case ".pem":
		return Certificate
	case ".json":
		return CredentialKeySet
	default:
		return Ignored
	}
}

// Kid derives a key identifier from a file name: the base name without its
// extension, in Unicode NFC.
func Kid(path string) (string, error) {
	base := filepath.Base(path)
	kid := norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
	if kid == "" || kid == "." || kid == ".." {
		return "", fmt.Errorf("%w: %q", errInvalidKid, base)
	}
	return kid, nil
}

// KeySet parses a credential key set. Every key is wrapped with its own kid
// and the whole key object as its JWK.
//
// Returns:
//   - []diddoc.WrappedKey: Keys in file order
//   - error: JSON syntax error, or [ErrClassificationSkip] when the content
//     is valid JSON of another shape
func KeySet(data []byte) ([]diddoc.WrappedKey, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("trustlist: decode key set: %w", err)
	}

	result, err := keySetSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("trustlist: validate key set: %w", err)
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrClassificationSkip, strings.Join(reasons, "; "))
	}

	keys := doc.(map[string]any)["keys"].([]any)
	wrapped := make([]diddoc.WrappedKey, 0, len(keys))
	for _, k := range keys {
		jwk := k.(map[string]any)
		wrapped = append(wrapped, diddoc.WrappedKey{
			Kid:          jwk["kid"].(string),
			PublicKeyJwk: jwk,
		})
	}
	return wrapped, nil
}
