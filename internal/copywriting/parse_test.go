package copywriting

import (
	"fmt"
	"testing"

	"github.com/jonathan/cardcopy/internal/prompts"
	"github.com/stretchr/testify/assert"
)

func compliantResponse(s Sections) string {
	return fmt.Sprintf("%s: %s\n\n%s: %s\n\n%s: %s",
		prompts.LabelHeadline, s.Headline,
		prompts.LabelBodyText, s.BodyText,
		prompts.LabelCallToAction, s.CallToAction)
}

func TestParse_RoundTrip(t *testing.T) {
	cases := []Sections{
		{
			Headline:     "Water Every Field With Sunlight",
			BodyText:     "Solar pumps bring steady irrigation to small farms.\n\nPanels power the pump during daylight hours.\n\nHarvests improve while diesel bills fall.",
			CallToAction: "Book a Site Visit",
		},
		{
			Headline:     "Solar: A Better Way to Irrigate",
			BodyText:     "One paragraph only, with a colon: right here.",
			CallToAction: "Learn More",
		},
		{
			Headline:     "Ünïcode Headline, Still Intact",
			BodyText:     "Café owners love it.\nLine two follows directly.",
			CallToAction: "Visit Us",
		},
	}

	for i, want := range cases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			assert.Equal(t, want, Parse(compliantResponse(want)))
		})
	}
}

func TestParse_Variants(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Sections
	}{
		{
			name: "emphasized labels",
			raw:  "**HEADLINE**: Bright Ideas\n\n**BODY_TEXT**: First paragraph here.\n\nSecond paragraph here.\n\n**CALL_TO_ACTION**: Join Now",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "First paragraph here.\n\nSecond paragraph here.",
				CallToAction: "Join Now",
			},
		},
		{
			name: "emphasis wrapping label and colon",
			raw:  "**HEADLINE:** Bright Ideas\n\n**BODY_TEXT:** Body copy.\n\n**CALL_TO_ACTION:** Join Now",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Body copy.",
				CallToAction: "Join Now",
			},
		},
		{
			name: "loose labels on consecutive lines",
			raw:  "Headline: Bright Ideas\nBody text: Body copy that runs on.\nCTA: Join Now",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Body copy that runs on.",
				CallToAction: "Join Now",
			},
		},
		{
			name: "short aliases",
			raw:  "headline: Bright Ideas\n\nbody: Body copy.\n\ncta: Join Now",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Body copy.",
				CallToAction: "Join Now",
			},
		},
		{
			name: "code fence",
			raw:  "```text\nHEADLINE: Bright Ideas\n\nBODY_TEXT: Body copy.\n\nCALL_TO_ACTION: Join Now\n```",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Body copy.",
				CallToAction: "Join Now",
			},
		},
		{
			name: "missing call to action",
			raw:  "HEADLINE: Bright Ideas\n\nBODY_TEXT: Body copy.",
			expected: Sections{
				Headline: "Bright Ideas",
				BodyText: "Body copy.",
			},
		},
		{
			name: "template brackets and quotes",
			raw:  "HEADLINE: \"Bright Ideas\"\n\nBODY_TEXT: [Body copy.]\n\nCALL_TO_ACTION: [Join Now]",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Body copy.",
				CallToAction: "Join Now",
			},
		},
		{
			name: "collapses blank lines and strips markup",
			raw:  "HEADLINE: Bright **Ideas**\n\nBODY_TEXT: ### Opening\nFirst.\n\n\n\nSecond __point__.\n\nCALL_TO_ACTION: Go",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Opening\nFirst.\n\nSecond point.",
				CallToAction: "Go",
			},
		},
		{
			name: "mixed case word with colon stays in body",
			raw:  "HEADLINE: H\n\nBODY_TEXT: First.\n\nNote: this stays.\n\nCALL_TO_ACTION: Go",
			expected: Sections{
				Headline:     "H",
				BodyText:     "First.\n\nNote: this stays.",
				CallToAction: "Go",
			},
		},
		{
			name: "windows line endings",
			raw:  "HEADLINE: Bright Ideas\r\n\r\nBODY_TEXT: Body copy.\r\n\r\nCALL_TO_ACTION: Join Now",
			expected: Sections{
				Headline:     "Bright Ideas",
				BodyText:     "Body copy.",
				CallToAction: "Join Now",
			},
		},
		{
			name:     "no labels",
			raw:      "Just some prose without any structure.",
			expected: Sections{},
		},
		{
			name:     "empty",
			raw:      "",
			expected: Sections{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.raw))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "HEADLINE: x", stripCodeFence("```HEADLINE: x```"))
	assert.Equal(t, "plain", stripCodeFence("  plain  "))
	assert.Equal(t, "inner", stripCodeFence("```markdown\ninner\n```"))
}
