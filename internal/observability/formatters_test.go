package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cardcopy/internal/generation"
	"github.com/jonathan/cardcopy/internal/sanitize"
	"github.com/jonathan/cardcopy/internal/types"
	"github.com/jonathan/cardcopy/internal/validation"
)

func TestPrintAssessment(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := sanitize.Inspect(types.NewFieldSet(
		types.Field{Name: "card_title", Value: "Solar-powered irrigation for smallholder farms"},
		types.Field{Name: "target_audience", Value: "rural cooperatives"},
		types.Field{Name: "notes", Value: "test"},
	))

	p.PrintAssessment(report)
	output := buf.String()

	assert.Contains(t, output, "INPUT ASSESSMENT")
	assert.Contains(t, output, "85/100 (model)")
	assert.Contains(t, output, "card_title")
	assert.Contains(t, output, "notes (placeholder)")
}

func TestPrintAssessment_LowScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAssessment(sanitize.Inspect(types.NewFieldSet(types.Field{Name: "name", Value: "hi"})))

	assert.Contains(t, buf.String(), "0/100 (fallback)")
	assert.NotContains(t, buf.String(), "Retained:")
}

func TestPrintGeneration(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGeneration(generation.Result{
		Outcome: generation.StateValidationFailed,
		States: []generation.State{
			generation.StateReceived, generation.StateSanitized, generation.StateModelCalled,
			generation.StateModelSucceeded, generation.StateValidationFailed, generation.StateDone,
		},
		Score: 85,
		Err: &generation.OutputRejectedError{
			Message: "body failed 1 quality checks",
			Issues:  []validation.Issue{{Kind: validation.IssueTooShort}},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATION")
	assert.Contains(t, output, "→ MODEL_CALLED")
	assert.Contains(t, output, "Outcome:  VALIDATION_FAILED")
	assert.Contains(t, output, "⚠ too_short")
}

func TestPrintContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintContent(types.GeneratedContent{
		Headline:     "Water Every Field With Sunlight",
		BodyText:     "First paragraph.\n\nSecond paragraph.",
		CallToAction: "Book a Site Visit",
		Fallback:     true,
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATED CONTENT")
	assert.Contains(t, output, "Source:   fallback")
	assert.Contains(t, output, "Second paragraph.")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
