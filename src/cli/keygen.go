// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/proof"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/spf13/cobra"
)

type keygenFlags struct {
	id         string
	controller string
	output     string
}

func (a *app) keygenCommand() *cobra.Command {
	var f keygenFlags

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an Ed25519VerificationKey2020 signing key pair",
		Long: `Writes a new key pair for signing. Publish the verification method
without privateKeyMultibase in the controller's DID document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runKeygen(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.id, "id", "", "verification method id, e.g. did:web:example.com#signer")
	cmd.Flags().StringVar(&f.controller, "controller", "", "controller DID, e.g. did:web:example.com")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("controller")
	return cmd
}

func (a *app) runKeygen(cmd *cobra.Command, f keygenFlags) error {
	kp, err := proof.GenerateKeyPair(f.id, f.controller, nil)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(kp, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if f.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(f.output, data, 0o600); err != nil {
		return fmt.Errorf("error writing key pair: %w", err)
	}
	logger.OKf(a.log, "Wrote %s, public key %s", f.output, kp.PublicKeyMultibase)
	return nil
}
