// Package copywriting turns model output into card sections and produces template copy when the model cannot be used.
package copywriting

import (
	"regexp"
	"strings"

	"github.com/jonathan/cardcopy/internal/prompts"
)

// Sections holds the labeled parts of a model response. Missing parts are empty.
type Sections struct {
	Headline     string `json:"headline"`
	BodyText     string `json:"body_text"`
	CallToAction string `json:"call_to_action"`
}

// extractor locates the start of a labeled section; the section runs to sectionEnd.
type extractor struct {
	name  string
	start *regexp.Regexp
}

var (
	headlineExtractors = newExtractors(prompts.LabelHeadline)
	bodyExtractors     = newExtractors(prompts.LabelBodyText, "BODY")
	ctaExtractors      = newExtractors(prompts.LabelCallToAction, "CTA")

	// sectionEnd matches the next label: any upper-case label after a blank
	// line, or one of the known labels at the start of a line.
	sectionEnd = regexp.MustCompile(
		`\n[ \t]*\n[ \t]*(?:\*\*)?[A-Z][A-Z_]{2,}(?:\*\*)?[ \t]*:` +
			`|\n[ \t]*(?:\*\*)?(?i:headline|body[_ ]text|body|call[_ ]to[_ ]action|cta)(?:\*\*)?[ \t]*:`)

	headingMarker  = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	excessNewlines = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// newExtractors builds the ordered strategies for a label: plain, emphasized, then loose.
func newExtractors(label string, aliases ...string) []extractor {
	quoted := regexp.QuoteMeta(label)

	loose := make([]string, 0, len(aliases)+1)
	for _, name := range append([]string{label}, aliases...) {
		loose = append(loose, strings.ReplaceAll(regexp.QuoteMeta(name), "_", "[_ ]"))
	}

	return []extractor{
		{name: "plain", start: regexp.MustCompile(quoted + `:[ \t]*`)},
		{name: "emphasized", start: regexp.MustCompile(`\*\*` + quoted + `(?:\*\*[ \t]*:|:\*\*)[ \t]*`)},
		{name: "loose", start: regexp.MustCompile(`(?i)\b(?:` + strings.Join(loose, "|") + `)[ \t]*:[ \t]*`)},
	}
}

// Parse extracts the headline, body text and call-to-action from raw model output.
func Parse(raw string) Sections {
	text := stripCodeFence(strings.ReplaceAll(raw, "\r\n", "\n"))

	return Sections{
		Headline:     trimQuotes(extract(text, headlineExtractors)),
		BodyText:     extract(text, bodyExtractors),
		CallToAction: trimQuotes(extract(text, ctaExtractors)),
	}
}

func extract(text string, extractors []extractor) string {
	for _, ex := range extractors {
		loc := ex.start.FindStringIndex(text)
		if loc == nil {
			continue
		}
		section := text[loc[1]:]
		if end := sectionEnd.FindStringIndex(section); end != nil {
			section = section[:end[0]]
		}
		if cleaned := cleanSection(section); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

func cleanSection(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = headingMarker.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") && strings.Count(s, "[") == 1 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// stripCodeFence removes a markdown code fence wrapped around the whole response.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.Contains(text[:i], ":") {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func trimQuotes(s string) string {
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}} {
		if len(s) >= 2 && strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			return strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
		}
	}
	return s
}
