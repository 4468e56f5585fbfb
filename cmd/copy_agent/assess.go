package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardcopy/internal/generation"
	"github.com/jonathan/cardcopy/internal/observability"
	"github.com/jonathan/cardcopy/internal/sanitize"
)

type assessOptions struct {
	fields fieldFlags
	asJSON bool
}

// assessOutput is the JSON form of an assessment.
type assessOutput struct {
	sanitize.Report
	// Accepted reports whether the input would be sent to the model
	Accepted bool `json:"accepted"`
}

func newAssessCmd() *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score field values and show which ones are dropped as junk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssess(opts, cmd.OutOrStdout())
		},
	}

	opts.fields.register(cmd)
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the assessment as JSON")

	return cmd
}

func runAssess(opts *assessOptions, stdout io.Writer) error {
	fields, err := opts.fields.load()
	if err != nil {
		return err
	}

	report := sanitize.Inspect(fields)

	if !opts.asJSON {
		observability.NewPrinter(stdout).PrintAssessment(report)
		return nil
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(assessOutput{Report: report, Accepted: report.Score >= generation.QualityThreshold}); err != nil {
		return fmt.Errorf("failed to write assessment: %w", err)
	}
	return nil
}
