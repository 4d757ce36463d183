// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package docloader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/didweb"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/H0llyW00dzZ/did-trust-registry/src/version"
	"github.com/piprate/json-gold/ld"
)

// RemoteDocument is a loaded JSON-LD document.
//
// Exactly one of Document and Error is set. Static is true for pinned
// documents and for DID documents, which are never re-fetched as contexts.
type RemoteDocument struct {
	URL      string
	Document any
	Static   bool
	Error    *didweb.ResolutionError
}

// Loader loads contexts and DID documents for signing and verification.
//
// Lookups go to the run cache first, then to pinned documents, then to
// did:web resolution for did:web URLs and finally to the JSON-LD fallback
// loader for everything else.
type Loader struct {
	cache    *Cache
	static   map[string]any
	resolver *didweb.Resolver
	fallback ld.DocumentLoader
	http     *didweb.HTTPConfig
	log      logger.Logger
}

// Option configures a [Loader].
type Option func(*Loader)

// WithCache injects the run cache. Without it the loader gets its own.
func WithCache(c *Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// WithHTTPConfig sets the HTTP client used by the default resolver and the
// default fallback loader.
func WithHTTPConfig(cfg *didweb.HTTPConfig) Option {
	return func(l *Loader) { l.http = cfg }
}

// WithResolver replaces the did:web resolver.
func WithResolver(r *didweb.Resolver) Option {
	return func(l *Loader) { l.resolver = r }
}

// WithFallback replaces the loader used for URLs that are neither pinned
// nor did:web.
func WithFallback(f ld.DocumentLoader) Option {
	return func(l *Loader) { l.fallback = f }
}

// WithStatic pins doc under url.
func WithStatic(url string, doc any) Option {
	return func(l *Loader) { l.static[url] = doc }
}

// WithLogger sets the logger used to report failed resolutions.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// New returns a Loader. Unset parts default to a fresh cache, a did:web
// resolver and the network loader of json-gold, both sharing one HTTP
// client. The contexts listed by [BundledContexts] are pinned from the
// copies shipped with the binary; WithStatic and PinFile replace them.
func New(opts ...Option) *Loader {
	l := &Loader{static: bundled()}
	for _, opt := range opts {
		opt(l)
	}

	if l.cache == nil {
		l.cache = NewCache()
	}
	if l.http == nil {
		l.http = didweb.NewHTTPConfig(version.Version)
	}
	if l.resolver == nil {
		l.resolver = didweb.NewResolver(l.http)
	}
	if l.fallback == nil {
		l.fallback = ld.NewDefaultDocumentLoader(l.http.Client())
	}
	return l
}

// PinFile pins the JSON-LD document stored at path under url.
func (l *Loader) PinFile(url, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("docloader: pin %s: %w", url, err)
	}
	defer f.Close()

	doc, err := ld.DocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("docloader: pin %s from %s: %w", url, path, err)
	}
	l.static[url] = doc
	return nil
}

// Cache returns the run cache.
func (l *Loader) Cache() *Cache { return l.cache }

// Load returns the document at url.
//
// A did:web URL that cannot be resolved is logged and returned as a
// document carrying [RemoteDocument.Error]; the returned error is nil in
// that case. Errors are returned for canceled contexts and for fallback
// loader failures.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: Context URL or DID URL, optionally with a fragment
//
// Returns:
//   - *RemoteDocument: Loaded document or resolution failure
//   - error: Cancellation or fallback loader failure
func (l *Loader) Load(ctx context.Context, url string) (*RemoteDocument, error) {
	if doc, ok := l.cache.Get(url); ok {
		return doc, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := l.load(ctx, url)
	if err != nil {
		return nil, err
	}
	l.cache.Set(url, doc)
	return doc, nil
}

func (l *Loader) load(ctx context.Context, url string) (*RemoteDocument, error) {
	if doc, ok := l.static[url]; ok {
		return &RemoteDocument{URL: url, Document: doc, Static: true}, nil
	}

	if strings.HasPrefix(url, "did:web:") {
		res := l.resolver.Resolve(ctx, url)
		if res.Error != nil {
			logger.Failf(l.log, "could not resolve %s: %s", url, res.Error.Message)
			return &RemoteDocument{URL: url, Error: res.Error}, nil
		}
		return &RemoteDocument{URL: url, Document: res.Document, Static: true}, nil
	}

	remote, err := l.fallback.LoadDocument(url)
	if err != nil {
		return nil, fmt.Errorf("docloader: load %s: %w", url, err)
	}
	return &RemoteDocument{URL: remote.DocumentURL, Document: remote.Document}, nil
}

// LoadDocument implements [ld.DocumentLoader] without cancellation.
func (l *Loader) LoadDocument(url string) (*ld.RemoteDocument, error) {
	return l.WithContext(context.Background()).LoadDocument(url)
}

// WithContext returns an [ld.DocumentLoader] bound to ctx, for use as the
// DocumentLoader of json-gold options.
func (l *Loader) WithContext(ctx context.Context) ld.DocumentLoader {
	return &boundLoader{ctx: ctx, l: l}
}

type boundLoader struct {
	ctx context.Context
	l   *Loader
}

func (b *boundLoader) LoadDocument(url string) (*ld.RemoteDocument, error) {
	doc, err := b.l.Load(b.ctx, url)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	if doc.Error != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, doc.Error)
	}
	return &ld.RemoteDocument{DocumentURL: doc.URL, Document: doc.Document}, nil
}
