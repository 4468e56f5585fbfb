package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cardcopy/internal/observability"
	"github.com/jonathan/cardcopy/internal/rendering"
	"github.com/jonathan/cardcopy/internal/sanitize"
	"github.com/jonathan/cardcopy/internal/types"
)

type generateOptions struct {
	fields  fieldFlags
	style   string
	format  string
	offline bool
	verbose bool
}

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate card copy from field values",
		Long: `Generate a headline, body text and call-to-action for one card and print
the response envelope served by POST /api/generate as JSON.

Without an API key, or with --offline, the deterministic fallback copy is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), flags, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	opts.fields.register(cmd)
	cmd.Flags().StringVarP(&opts.style, "style", "s", string(types.DefaultStyle), "Writing style: professional, casual, creative, technical or persuasive")
	cmd.Flags().StringVar(&opts.format, "format", types.FormatText, "Body format: text or html")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Never call the model")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print assessment and generation details to stderr")

	return cmd
}

func runGenerate(ctx context.Context, flags *globalFlags, opts *generateOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.format != types.FormatText && opts.format != types.FormatHTML {
		return fmt.Errorf("invalid --format %q, expected text or html", opts.format)
	}

	fields, err := opts.fields.load()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	ctx = logger.WithContext(ctx)

	generator, closeClient, err := newGenerator(ctx, cfg, opts.offline, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	style := types.ParseStyle(opts.style)
	result := generator.Generate(ctx, fields, style)
	content := result.Content

	if opts.format == types.FormatHTML {
		if content, err = rendering.WithHTML(content); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
	}

	if opts.verbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintAssessment(sanitize.Inspect(fields))
		printer.PrintGeneration(result)
		printer.PrintContent(content)
	}

	response := types.GenerateResponse{
		Success:          true,
		GeneratedContent: &content,
		Model:            generator.Model(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		RequestID:        uuid.New().String(),
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
