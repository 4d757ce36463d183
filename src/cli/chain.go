// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/trustlist"
	x509certs "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	validation "github.com/jellydator/validation"
	"github.com/spf13/cobra"
)

// Chain output formats.
const (
	FormatTree  = "tree"
	FormatTable = "table"
	FormatJSON  = "json"
)

type chainFlags struct {
	store  string
	format string
}

func (a *app) chainCommand() *cobra.Command {
	var f chainFlags

	cmd := &cobra.Command{
		Use:   "chain CERTIFICATE",
		Short: "Show the issuance chain x5c would carry for a certificate",
		Long: `Indexes the certificates below --store by Subject Key Identifier and
follows Authority Key Identifiers from CERTIFICATE up to the last issuer
the store knows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChain(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.store, "store", "", "directory of certificates to resolve issuers from (default: directory of CERTIFICATE)")
	cmd.Flags().StringVarP(&f.format, "format", "f", FormatTree, "output format: tree, table or json")
	return cmd
}

func (a *app) runChain(cmd *cobra.Command, path string, f chainFlags) error {
	if err := validation.Validate(f.format,
		validation.Required,
		validation.In(FormatTree, FormatTable, FormatJSON),
	); err != nil {
		return fmt.Errorf("--format: %w", err)
	}
	if f.store == "" {
		f.store = filepath.Dir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading certificate: %w", err)
	}
	cert, err := x509certs.New().Decode(data)
	if err != nil {
		return fmt.Errorf("error decoding certificate: %w", err)
	}

	store, err := a.indexStore(f.store)
	if err != nil {
		return err
	}

	ch, err := x509chain.Walk(cert, store)
	if err != nil {
		return err
	}
	if ch.MissingIssuer != "" {
		logger.Warnf(a.log, "issuer %s is not in %s, chain ends early", ch.MissingIssuer, f.store)
	}

	out := cmd.OutOrStdout()
	switch f.format {
	case FormatTable:
		fmt.Fprint(out, ch.RenderTable())
	case FormatJSON:
		data, err := ch.ToVisualizationJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		fmt.Fprint(out, ch.RenderASCIITree())
	}
	return nil
}

// indexStore indexes every certificate .pem file below dir.
func (a *app) indexStore(dir string) (*x509chain.Store, error) {
	decoder := x509certs.New()

	var blobs []x509chain.Blob
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || trustlist.Classify(path) != trustlist.Certificate {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if decoder.Classify(data) == x509certs.KindCertificate {
			blobs = append(blobs, x509chain.Blob{Name: path, PEM: data})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading store: %w", err)
	}
	return x509chain.Index(blobs, x509chain.WithLogger(a.log))
}
