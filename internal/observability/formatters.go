// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cardcopy/internal/generation"
	"github.com/jonathan/cardcopy/internal/sanitize"
	"github.com/jonathan/cardcopy/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxValueChars bounds field values shown in a box row
	maxValueChars = 36
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to n runes, marking the cut with "..."
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintAssessment outputs the retained fields, dropped fields and quality score.
func (p *Printer) PrintAssessment(report sanitize.Report) {
	var sb strings.Builder

	gate := "model"
	if report.Score < generation.QualityThreshold {
		gate = "fallback"
	}
	sb.WriteString(fmt.Sprintf("Score:    %d/100 (%s)\n", report.Score, gate))
	sb.WriteString("\n")

	fields := report.Cleaned.Fields()
	if len(fields) > 0 {
		sb.WriteString("Retained:\n")
		count := min(len(fields), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", fields[i].Name, shorten(fields[i].Value, maxValueChars)))
		}
		if len(fields) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(fields)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(report.Dropped) > 0 {
		sb.WriteString("Dropped:\n")
		count := min(len(report.Dropped), maxItemsToShow)
		for i := 0; i < count; i++ {
			d := report.Dropped[i]
			sb.WriteString(fmt.Sprintf("  ⚠ %s (%s)\n", d.Name, d.Reason))
		}
		if len(report.Dropped) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Dropped)-maxItemsToShow))
		}
	}

	p.printBox("INPUT ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration outputs the state trail of a generation and why fallback was used, if it was.
func (p *Printer) PrintGeneration(result generation.Result) {
	var sb strings.Builder

	states := make([]string, len(result.States))
	for i, s := range result.States {
		states[i] = string(s)
	}

	sb.WriteString(fmt.Sprintf("Outcome:  %s\n", result.Outcome))
	sb.WriteString(fmt.Sprintf("Score:    %d\n", result.Score))
	sb.WriteString("\nStates:\n")
	for _, s := range states {
		sb.WriteString(fmt.Sprintf("  → %s\n", s))
	}

	if result.Err != nil {
		sb.WriteString("\nReason:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", result.Err))

		var rejected *generation.OutputRejectedError
		if errors.As(result.Err, &rejected) {
			for _, issue := range rejected.Issues {
				sb.WriteString(fmt.Sprintf("  ⚠ %s\n", issue.Kind))
			}
		}
	}

	p.printBox("GENERATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintContent outputs the generated headline, body and call-to-action.
func (p *Printer) PrintContent(content types.GeneratedContent) {
	var sb strings.Builder

	source := "model"
	if content.Fallback {
		source = "fallback"
	}
	sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	sb.WriteString(fmt.Sprintf("Headline: %s\n", content.Headline))
	sb.WriteString(fmt.Sprintf("CTA:      %s\n", content.CallToAction))
	sb.WriteString("\n")

	paragraphs := strings.Split(content.BodyText, "\n\n")
	for i, para := range paragraphs {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more paragraphs\n", len(paragraphs)-maxItemsToShow))
			break
		}
		sb.WriteString(strings.ReplaceAll(strings.TrimSpace(para), "\n", " ") + "\n")
	}

	p.printBox("GENERATED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}
