// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustlist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/config"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/diddoc"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/keynorm"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/persist"
	x509certs "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
)

// Signer adds a proof to a document. *proof.Signer implements it.
type Signer interface {
	Sign(ctx context.Context, doc *diddoc.Document) (*diddoc.Document, error)
}

// SigningError reports a document the signer refused. It aborts the run.
type SigningError struct {
	DID string
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("trustlist: sign %s: %v", e.DID, e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// Pipeline turns one source tree into a tree of DID documents.
//
// A Pipeline is single use: its certificate store, document maps and
// counters belong to one [Pipeline.Run].
type Pipeline struct {
	target config.Target
	signer Signer
	writer *persist.Writer
	policy x509chain.CollisionPolicy
	log    logger.Logger

	unsigned *diddoc.Collection
	signed   *diddoc.Collection
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithLogger sets the logger for per-file status lines.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithCollisionPolicy sets the duplicate SKI policy of the certificate store.
func WithCollisionPolicy(policy x509chain.CollisionPolicy) Option {
	return func(p *Pipeline) { p.policy = policy }
}

// WithWriter replaces the default persistence writer.
func WithWriter(w *persist.Writer) Option {
	return func(p *Pipeline) { p.writer = w }
}

// New returns a Pipeline for target that signs with signer.
func New(target config.Target, signer Signer, opts ...Option) *Pipeline {
	p := &Pipeline{
		target:   target,
		signer:   signer,
		policy:   x509chain.LastWins,
		unsigned: diddoc.NewCollection(),
		signed:   diddoc.NewCollection(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.writer == nil {
		p.writer = persist.NewWriter()
	}
	return p
}

// Run processes every file below the target's source directory in lexical
// order, then writes the four master lists.
//
// Files that cannot be parsed or classified are logged and recorded in the
// report; they never stop the run. A duplicate SKI under the reject policy,
// a signing failure, an I/O failure or a canceled ctx stops it.
//
// Parameters:
//   - ctx: Context for cancellation and document loading during signing
//
// Returns:
//   - *Report: What happened to each file and how many documents were written
//   - error: [*SigningError], [*x509chain.DuplicateSKIError] or an I/O error
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Target:        p.target.Name,
		Canonicalizer: p.writer.Canonicalizer().Version(),
	}

	files, err := collect(p.target.Source)
	if err != nil {
		return nil, err
	}

	store, err := p.index(files)
	if err != nil {
		return nil, err
	}
	report.Certificates = store.Len()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := p.processFile(ctx, path, store)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, res)
	}

	if err := p.writeMasterLists(ctx); err != nil {
		return nil, err
	}

	report.Keys = p.unsigned.Len()
	report.Persist = p.writer.Stats()
	return report, nil
}

// collect lists regular files below root. WalkDir visits entries in lexical
// order, which fixes the order of keys in the master lists.
func collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("trustlist: walk %s: %w", root, err)
	}
	return files, nil
}

func (p *Pipeline) index(files []string) (*x509chain.Store, error) {
	decoder := x509certs.New()

	var blobs []x509chain.Blob
	for _, path := range files {
		if Classify(path) != Certificate {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			// Left out of the store; load reports the file as failed.
			continue
		}
		// Bare public keys share the extension but have no place in the store.
		if decoder.Classify(data) == x509certs.KindPublicKey {
			continue
		}
		blobs = append(blobs, x509chain.Blob{Name: p.rel(path), PEM: data})
	}

	return x509chain.Index(blobs,
		x509chain.WithLogger(p.log),
		x509chain.WithCollisionPolicy(p.policy),
	)
}

// processFile runs one file through classification, normalization,
// assembly, signing and persistence. Only errors that must stop the run
// are returned; everything else ends up in the FileResult.
func (p *Pipeline) processFile(ctx context.Context, path string, store *x509chain.Store) (FileResult, error) {
	res := FileResult{Path: p.rel(path), Kind: Classify(path)}

	if res.Kind == Ignored {
		res.Status = StatusIgnored
		logger.Infof(p.log, "%s", res.Path)
		return res, nil
	}

	kid, keys, err := p.load(path, res.Kind, store)
	res.Kid = kid
	switch {
	case errors.Is(err, ErrClassificationSkip):
		res.Status, res.Err = StatusSkipped, err
		logger.Warnf(p.log, "%s: %v", res.Path, err)
		return res, nil
	case err != nil:
		res.Status, res.Err = StatusFailed, err
		logger.Failf(p.log, "Error Processing %s: %v", res.Path, err)
		return res, nil
	}

	if err := p.emit(ctx, kid, keys); err != nil {
		return res, err
	}

	res.Status = StatusAccepted
	logger.OKf(p.log, "%s", res.Path)
	return res, nil
}

// load reads a classified file and returns the kid of its documents and the
// keys they list.
func (p *Pipeline) load(path string, kind Kind, store *x509chain.Store) (string, []diddoc.WrappedKey, error) {
	kid, err := Kid(path)
	if err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return kid, nil, fmt.Errorf("trustlist: read %s: %w", path, err)
	}

	if kind == CredentialKeySet {
		keys, err := KeySet(data)
		return kid, keys, err
	}

	jwk, err := keynorm.Normalize(data, store)
	if err != nil {
		return kid, nil, err
	}
	return kid, []diddoc.WrappedKey{{Kid: kid, PublicKeyJwk: jwk}}, nil
}

// emit writes the unsigned and signed per-key documents for kid.
func (p *Pipeline) emit(ctx context.Context, kid string, keys []diddoc.WrappedKey) error {
	root := p.target.RootDID

	unsignedDID := root + ":u:k:" + kid
	if _, ok := p.unsigned.Get(unsignedDID); ok {
		logger.Warnf(p.log, "%s is produced twice, the later file wins", unsignedDID)
	}
	unsigned := diddoc.AssembleSingle(unsignedDID, keys)
	if err := p.persist(unsigned, "u", "k", kid); err != nil {
		return err
	}
	p.unsigned.Set(unsignedDID, unsigned)

	signedDID := root + ":s:k:" + kid
	signed, err := p.sign(ctx, diddoc.AssembleSingle(signedDID, keys))
	if err != nil {
		return err
	}
	if err := p.persist(signed, "s", "k", kid); err != nil {
		return err
	}
	p.signed.Set(signedDID, signed)
	return nil
}

// writeMasterLists writes the reference and embed collections of both maps.
// The signed lists are signed themselves.
func (p *Pipeline) writeMasterLists(ctx context.Context) error {
	root := p.target.RootDID

	lists := []struct {
		variant string
		coll    *diddoc.Collection
		mode    diddoc.Mode
		sign    bool
	}{
		{"u", p.unsigned, diddoc.ByReference, false},
		{"u", p.unsigned, diddoc.Embed, false},
		{"s", p.signed, diddoc.ByReference, true},
		{"s", p.signed, diddoc.Embed, true},
	}

	for _, l := range lists {
		suffix := "r"
		if l.mode == diddoc.Embed {
			suffix = "e"
		}

		doc := diddoc.AssembleCollection(root+":"+l.variant+":ml:"+suffix, l.coll, l.mode)
		if l.sign {
			var err error
			if doc, err = p.sign(ctx, doc); err != nil {
				return err
			}
		}
		if err := p.persist(doc, l.variant, "ml", suffix); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) sign(ctx context.Context, doc *diddoc.Document) (*diddoc.Document, error) {
	signed, err := p.signer.Sign(ctx, doc)
	if err != nil {
		return nil, &SigningError{DID: doc.ID, Err: err}
	}
	return signed, nil
}

func (p *Pipeline) persist(doc *diddoc.Document, segments ...string) error {
	elems := append([]string{p.target.Destination}, segments...)
	path := filepath.Join(append(elems, persist.FileName)...)
	if _, err := p.writer.Persist(path, doc); err != nil {
		return err
	}
	return nil
}

// rel returns path relative to the source directory for status lines.
func (p *Pipeline) rel(path string) string {
	if r, err := filepath.Rel(p.target.Source, path); err == nil {
		return r
	}
	return path
}
