// Package main provides the entry point for the card copy generation service and CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/cardcopy/internal/config"
	"github.com/jonathan/cardcopy/internal/generation"
	"github.com/jonathan/cardcopy/internal/llm"
	"github.com/jonathan/cardcopy/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "copy_agent",
		Short: "Card copy generation HTTP API server",
		Long: `copy_agent turns loosely structured form fields into a headline, body text and
call-to-action for a content card, in one of five writing styles.

Examples:
  # Start the API server
  copy_agent serve --port 5001

  # Generate copy from the command line without calling a model
  copy_agent generate --field card_title="Solar irrigation" --style casual --offline

  # Inspect how input fields are scored
  copy_agent assess --fields fields.json`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (default from config: info)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: json or console (default from config)")

	rootCmd.AddCommand(newServeCmd(flags))
	rootCmd.AddCommand(newGenerateCmd(flags))
	rootCmd.AddCommand(newAssessCmd())
	rootCmd.AddCommand(newTokenCmd(flags))

	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and applies the logging flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	return cfg, nil
}

// newLogger builds the process logger from configuration.
func newLogger(cfg *config.Config, w io.Writer) (zerolog.Logger, error) {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, w)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newGenerator builds the generator. Without an API key, or when offline is
// set, no model client is created and every request is served fallback copy.
// The returned close function releases the client.
func newGenerator(ctx context.Context, cfg *config.Config, offline bool, logger zerolog.Logger) (*generation.Generator, func(), error) {
	opts := generation.Options{
		Tier:          llm.TierStandard,
		Params:        cfg.LLM.Params(),
		Timeout:       cfg.LLM.Timeout,
		MaxConcurrent: cfg.LLM.MaxConcurrent,
		ModelName:     cfg.LLM.ModelName(),
	}

	if offline || cfg.LLM.APIKey == "" {
		if !offline {
			logger.Warn().Str("provider", cfg.LLM.Provider).Msg("no API key configured, serving fallback content only")
		}
		return generation.New(nil, opts), func() {}, nil
	}

	client, err := llm.NewClient(ctx, cfg.LLM.ClientConfig(), cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close LLM client")
		}
	}
	return generation.New(client, opts), closeClient, nil
}
