package copywriting

import (
	"strings"
	"time"

	"github.com/jonathan/cardcopy/internal/prompts"
	"github.com/jonathan/cardcopy/internal/sanitize"
	"github.com/jonathan/cardcopy/internal/types"
)

const (
	// minSubjectScore is the quality score below which no subject is woven into templates
	minSubjectScore = 25
	// minSubjectChars is the shortest usable subject (exclusive)
	minSubjectChars = 5
	// maxSubjectChars bounds a subject taken from a field value
	maxSubjectChars = 60
	// minCharDiversity rejects subjects made of very few distinct characters
	minCharDiversity = 0.3
)

// Fallback builds deterministic copy for a cleaned FieldSet. It never fails and
// never returns an empty headline, body or call-to-action.
func Fallback(cleaned types.FieldSet, style types.Style) types.GeneratedContent {
	tmpl := fallbackTemplates[types.ParseStyle(string(style))]

	subject := Subject(cleaned)
	chosen := tmpl.WithoutSubject
	if subject != "" {
		chosen = tmpl.WithSubject
	}

	data := map[string]string{"Subject": subject}
	content := types.GeneratedContent{
		Headline:     prompts.Format(chosen.Headline, data),
		BodyText:     prompts.Format(chosen.BodyText, data),
		CallToAction: chosen.CallToAction,
		GeneratedAt:  time.Now().UTC(),
		Fallback:     true,
	}

	if cta := callerCTA(cleaned); cta != "" {
		content.CallToAction = cta
	}

	return content.Clamp()
}

// Subject picks the longest retained value as the card's subject, or "" when
// the input is too weak to name anything.
func Subject(cleaned types.FieldSet) string {
	if sanitize.Score(cleaned) < minSubjectScore {
		return ""
	}

	var longest string
	for _, v := range cleaned.Values() {
		v = strings.Join(strings.Fields(v), " ")
		if len([]rune(v)) > len([]rune(longest)) {
			longest = v
		}
	}

	subject := truncateWords(longest, maxSubjectChars)
	if len([]rune(subject)) <= minSubjectChars || !usablePhrase(subject) {
		return ""
	}
	return subject
}

// callerCTA returns a call-to-action supplied by the caller, if it is usable.
func callerCTA(cleaned types.FieldSet) string {
	cta := strings.Join(strings.Fields(cleaned.Lookup(types.CTAKeys...)), " ")
	cta = truncateWords(cta, types.MaxCTAChars)
	if cta == "" || !usablePhrase(cta) {
		return ""
	}
	return cta
}

func usablePhrase(s string) bool {
	if sanitize.ContainsDoubledPlaceholder(s) {
		return false
	}
	return sanitize.CharDiversity(s) >= minCharDiversity
}

// truncateWords cuts s to n code points, backing up to a word boundary when one is close.
func truncateWords(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if runes[n] != ' ' {
		if i := strings.LastIndex(cut, " "); i >= len(cut)/2 {
			cut = cut[:i]
		}
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(cut), ",;:-"))
}
