// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/config"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/proof"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/trustlist"
	x509chain "github.com/H0llyW00dzZ/did-trust-registry/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	target config.Target
	key    string
}

func (a *app) generateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the DID documents of every configured target",
		Long: `Walks the source directory of each target, turns every certificate and
credential key set into unsigned and signed DID documents and writes the
master lists. Unchanged documents are left untouched on disk.

Without targets in the configuration file, --source, --destination and
--root-did describe a single target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.target.Source, "source", "s", "", "directory with certificates and key sets")
	cmd.Flags().StringVarP(&f.target.Destination, "destination", "d", "", "directory the DID documents are written to")
	cmd.Flags().StringVar(&f.target.RootDID, "root-did", "", "DID every generated identifier starts with")
	cmd.Flags().StringVar(&f.target.Name, "name", "default", "target name used in the report")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "Ed25519VerificationKey2020 key pair file, overrides signerKeyFile")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, f generateFlags) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	if f.target.Source != "" || f.target.Destination != "" || f.target.RootDID != "" {
		if len(cfg.Targets) > 0 {
			return fmt.Errorf("--source, --destination and --root-did cannot be combined with targets from %s", a.configPath)
		}
		cfg.Targets = []config.Target{f.target}
	}
	if f.key != "" {
		cfg.SignerKeyFile = f.key
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, t := range cfg.Targets {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
	}

	key, err := proof.LoadKeyPair(cfg.SignerKeyFile)
	if err != nil {
		return err
	}

	for _, target := range cfg.Targets {
		logger.Infof(a.log, "Target %s: %s -> %s", target.Name, target.Source, target.Destination)

		loader, err := a.newLoader(cfg)
		if err != nil {
			return err
		}

		pipeline := trustlist.New(target, proof.NewSigner(key, loader),
			trustlist.WithLogger(a.log),
			trustlist.WithCollisionPolicy(x509chain.CollisionPolicy(cfg.DuplicateSKIPolicy)),
		)
		report, err := pipeline.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("target %q: %w", target.Name, err)
		}

		fmt.Fprint(cmd.OutOrStdout(), report.RenderTable())
		a.log.Println(loader.Cache().Stats())
	}

	logger.OKf(a.log, "Finished")
	return nil
}
