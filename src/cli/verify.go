// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/proof"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/spf13/cobra"
)

// ErrNotVerified is returned by verify when a proof does not hold.
var ErrNotVerified = errors.New("cli: proof verification failed")

func (a *app) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify DID_DOCUMENT...",
		Short: "Verify the Ed25519Signature2020 proof of signed DID documents",
		Long: `Checks the proof of each given did.json. The verification method is
resolved through did:web unless the configuration pins it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runVerify,
	}
}

func (a *app) runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	loader, err := a.newLoader(cfg)
	if err != nil {
		return err
	}
	verifier := proof.NewVerifier(loader)

	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("error decoding %s: %w", path, err)
		}

		res := verifier.Verify(cmd.Context(), doc)
		if !res.Verified {
			failed++
			logger.Failf(a.log, "%s: %v", path, res.Error)
			continue
		}
		logger.OKf(a.log, "%s: verified with %s", path, res.VerificationMethod)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents", ErrNotVerified, failed, len(args))
	}
	return nil
}
