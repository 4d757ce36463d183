// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package didweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/did-trust-registry/src/version"
)

const prefix = "did:web:"

// MaxDocumentSize bounds the body of a fetched DID document.
const MaxDocumentSize = 1 << 20

// Resolution error codes, as used in DID resolution metadata.
const (
	CodeInvalidDID         = "invalidDid"
	CodeNotFound           = "notFound"
	CodeInvalidDIDDocument = "invalidDidDocument"
	CodeInternalError      = "internalError"
)

// ErrInvalidDID is returned by [URL] for identifiers that are not did:web.
var ErrInvalidDID = errors.New("didweb: invalid did:web identifier")

// ResolutionError describes why a DID could not be resolved.
type ResolutionError struct {
	Code    string
	Message string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("didweb: %s: %s", e.Code, e.Message)
}

// Result is the outcome of resolving a DID URL. Exactly one of Document and
// Error is set.
type Result struct {
	DIDURL   string
	Document map[string]any
	Error    *ResolutionError
}

// URL maps a did:web identifier, optionally with a fragment, to the HTTPS
// location of its DID document.
//
//	did:web:example.com           -> https://example.com/.well-known/did.json
//	did:web:example.com:u:k:K1    -> https://example.com/u/k/K1/did.json
//	did:web:localhost%3A8443      -> https://localhost:8443/.well-known/did.json
//
// Returns:
//   - string: Document URL
//   - string: Fragment without the leading '#', empty if absent
//   - error: [ErrInvalidDID] on malformed input
func URL(did string) (string, string, error) {
	did, fragment, _ := strings.Cut(did, "#")

	rest, ok := strings.CutPrefix(did, prefix)
	if !ok || rest == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDID, did)
	}

	segments := strings.Split(rest, ":")
	for i, s := range segments {
		decoded, err := url.PathUnescape(s)
		if err != nil || decoded == "" || strings.Contains(decoded, "/") {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidDID, did)
		}
		segments[i] = decoded
	}

	if len(segments) == 1 {
		return "https://" + segments[0] + "/.well-known/did.json", fragment, nil
	}

	path := make([]string, len(segments)-1)
	for i, s := range segments[1:] {
		path[i] = url.PathEscape(s)
	}
	return "https://" + segments[0] + "/" + strings.Join(path, "/") + "/did.json", fragment, nil
}

// Resolver fetches did:web documents over HTTPS.
type Resolver struct {
	http *HTTPConfig
}

// NewResolver returns a Resolver using cfg for its HTTP client. A nil cfg
// selects the defaults of [NewHTTPConfig].
func NewResolver(cfg *HTTPConfig) *Resolver {
	if cfg == nil {
		cfg = NewHTTPConfig(version.Version)
	}
	return &Resolver{http: cfg}
}

// Resolve fetches the document for didURL. When didURL carries a fragment,
// the verification method with that id is returned instead of the whole
// document.
//
// Failures are reported in [Result.Error] and never as a Go error, so callers
// can log them and carry on.
func (r *Resolver) Resolve(ctx context.Context, didURL string) *Result {
	res := &Result{DIDURL: didURL}

	docURL, fragment, err := URL(didURL)
	if err != nil {
		res.Error = &ResolutionError{Code: CodeInvalidDID, Message: err.Error()}
		return res
	}

	doc, rerr := r.fetch(ctx, docURL)
	if rerr != nil {
		res.Error = rerr
		return res
	}

	if fragment == "" {
		res.Document = doc
		return res
	}

	did, _, _ := strings.Cut(didURL, "#")
	if vm := findMethod(doc, did, fragment); vm != nil {
		res.Document = vm
		return res
	}

	res.Error = &ResolutionError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("no verification method %s in %s", didURL, docURL),
	}
	return res
}

func (r *Resolver) fetch(ctx context.Context, docURL string) (map[string]any, *ResolutionError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, &ResolutionError{Code: CodeInternalError, Message: err.Error()}
	}
	req.Header.Set("User-Agent", r.http.GetUserAgent())
	req.Header.Set("Accept", "application/did+json, application/json")

	resp, err := r.http.Client().Do(req)
	if err != nil {
		return nil, &ResolutionError{Code: CodeInternalError, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ResolutionError{Code: CodeNotFound, Message: docURL}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ResolutionError{
			Code:    CodeInternalError,
			Message: fmt.Sprintf("%s: unexpected status %s", docURL, resp.Status),
		}
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, MaxDocumentSize+1)); err != nil {
		return nil, &ResolutionError{Code: CodeInternalError, Message: err.Error()}
	}
	if buf.Len() > MaxDocumentSize {
		return nil, &ResolutionError{
			Code:    CodeInvalidDIDDocument,
			Message: fmt.Sprintf("%s: document exceeds %d bytes", docURL, MaxDocumentSize),
		}
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, &ResolutionError{Code: CodeInvalidDIDDocument, Message: err.Error()}
	}
	return doc, nil
}

// findMethod looks up a verification method by absolute or relative id.
func findMethod(doc map[string]any, did, fragment string) map[string]any {
	methods, _ := doc["verificationMethod"].([]any)
	for _, m := range methods {
		vm, ok := m.(map[string]any)
		if !ok {
			continue
		}
		switch vm["id"] {
		case did + "#" + fragment, "#" + fragment:
			return vm
		}
	}
	return nil
}
