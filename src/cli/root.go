// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/config"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/didweb"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/docloader"
	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/did-trust-registry/src/logger"
	"github.com/fatih/color"
	validation "github.com/jellydator/validation"
	"github.com/spf13/cobra"
)

// app carries what every subcommand shares.
type app struct {
	version    string
	log        logger.Logger
	configPath string
	logFormat  string
}

// Execute runs the root command against os.Args.
//
// Parameters:
//   - ctx: Context for cancellation, canceled on SIGINT and SIGTERM by the caller
//   - version: Version string reported by --version and sent as User-Agent
//   - log: Logger for status lines; replaced by a JSON logger under --log-format json
//
// Returns:
//   - error: The first error a subcommand returned
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Each call returns fresh flag state.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	a := &app{version: version, log: log}
	name := posix.GetExecutableName()

	root := &cobra.Command{
		Use:   name,
		Short: "Publish certificates and key sets as a DID trust registry",
		Long: `Publishes a directory of X.509 certificates and JSON Web Key Sets as
did:web documents: one unsigned and one Ed25519Signature2020 signed
document per key, plus master lists that embed or reference them all.`,
		Example: fmt.Sprintf(`  %[1]s generate --config registry.yaml
  %[1]s generate --source ./keys --destination ./public --root-did did:web:example.com:tl --key signer.json
  %[1]s verify ./public/s/k/DSC01/did.json
  %[1]s chain leaf.pem --store ./keys --format table
  %[1]s keygen --id did:web:example.com#signer --controller did:web:example.com -o signer.json`, name),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.Validate(a.logFormat,
				validation.In(config.LogFormatText, config.LogFormatJSON),
			); err != nil {
				return fmt.Errorf("--log-format: %w", err)
			}
			a.useFormat(cmd, a.logFormat)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (.json, .yaml or .yml), defaults to $"+config.EnvConfigFile)
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "status line format: text or json")

	root.AddCommand(
		a.generateCommand(),
		a.verifyCommand(),
		a.chainCommand(),
		a.keygenCommand(),
	)
	return root
}

// useFormat switches to a JSON logger on stderr for the json format.
func (a *app) useFormat(cmd *cobra.Command, format string) {
	if format != config.LogFormatJSON {
		return
	}
	if _, ok := a.log.(*logger.JSONLogger); ok {
		return
	}
	// Escape sequences would end up inside the JSON messages.
	color.NoColor = true
	a.log = logger.NewJSONLogger(cmd.ErrOrStderr(), false)
}

// loadConfig loads the configuration file and applies the --log-format
// override.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.useFormat(cmd, cfg.LogFormat)
	return cfg, nil
}

// newLoader returns a document loader with a fresh run cache and every
// pinned context of cfg.
func (a *app) newLoader(cfg *config.Config) (*docloader.Loader, error) {
	httpCfg := didweb.NewHTTPConfig(a.version)
	httpCfg.Timeout = cfg.Resolver.Timeout()
	httpCfg.UserAgent = cfg.Resolver.UserAgent

	loader := docloader.New(
		docloader.WithHTTPConfig(httpCfg),
		docloader.WithLogger(a.log),
	)

	urls := make([]string, 0, len(cfg.Contexts))
	for url := range cfg.Contexts {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	for _, url := range urls {
		if err := loader.PinFile(url, cfg.Contexts[url]); err != nil {
			return nil, err
		}
	}
	return loader, nil
}
