//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

const (
	// MaxHeadlineChars is the longest headline served to callers
	MaxHeadlineChars = 100
	// MaxCTAChars is the longest call-to-action served to callers
	MaxCTAChars = 50
)

// GeneratedContent is the copy returned for a card.
type GeneratedContent struct {
	Headline     string    `json:"headline"`
	BodyText     string    `json:"body_text"`
	CallToAction string    `json:"call_to_action"`
	BodyHTML     string    `json:"body_html,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
	// Fallback is set only when the content came from deterministic templates.
	Fallback bool `json:"fallback,omitempty"`
}

// Clamp returns a copy with headline and call-to-action cut to their limits.
func (c GeneratedContent) Clamp() GeneratedContent {
	c.Headline = Truncate(c.Headline, MaxHeadlineChars)
	c.CallToAction = Truncate(c.CallToAction, MaxCTAChars)
	return c
}

// Truncate cuts s to at most n code points and trims trailing whitespace.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
