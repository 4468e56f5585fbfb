package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/cardcopy/internal/types"
)

// ReasonEmpty marks a field whose value was blank after normalization.
const ReasonEmpty Reason = "empty"

// Scoring weights
const (
	longValueChars   = 20
	mediumValueChars = 10
	longValuePoints  = 40
	mediumValuePts   = 25
	shortValuePoints = 10

	manyFieldsBonus = 35
	twoFieldsBonus  = 20
	oneFieldBonus   = 5

	richTextChars  = 150
	richTextBonus  = 25
	ampleTextChars = 80
	ampleTextBonus = 15

	maxScore = 100
)

// Dropped records a field removed during assessment.
type Dropped struct {
	Name   string `json:"name"`
	Reason Reason `json:"reason"`
}

// Report is the full outcome of assessing a FieldSet.
type Report struct {
	Cleaned types.FieldSet `json:"cleaned"`
	Score   int            `json:"score"`
	Dropped []Dropped      `json:"dropped,omitempty"`
}

// Assess drops junk fields and scores the meaningful remainder on a 0-100 scale.
func Assess(fields types.FieldSet) (types.FieldSet, int) {
	report := Inspect(fields)
	return report.Cleaned, report.Score
}

// Inspect is Assess with the per-field drop reasons kept.
func Inspect(fields types.FieldSet) Report {
	var kept []types.Field
	var dropped []Dropped

	for _, f := range fields.Fields() {
		value := Normalize(f.Value)
		if value == "" {
			dropped = append(dropped, Dropped{Name: f.Name, Reason: ReasonEmpty})
			continue
		}
		if reason, junk := Classify(value); junk {
			dropped = append(dropped, Dropped{Name: f.Name, Reason: reason})
			continue
		}
		kept = append(kept, types.Field{Name: f.Name, Value: value})
	}

	cleaned := types.NewFieldSet(kept...)
	return Report{
		Cleaned: cleaned,
		Score:   Score(cleaned),
		Dropped: dropped,
	}
}

// Score rates an already-cleaned FieldSet.
func Score(cleaned types.FieldSet) int {
	score := 0
	for _, v := range cleaned.Values() {
		n := len([]rune(v))
		switch {
		case n > longValueChars:
			score += longValuePoints
		case n > mediumValueChars:
			score += mediumValuePts
		default:
			score += shortValuePoints
		}
	}

	switch count := cleaned.Len(); {
	case count >= 3:
		score += manyFieldsBonus
	case count == 2:
		score += twoFieldsBonus
	case count == 1:
		score += oneFieldBonus
	}

	switch total := cleaned.TotalChars(); {
	case total > richTextChars:
		score += richTextBonus
	case total > ampleTextChars:
		score += ampleTextBonus
	}

	return max(0, min(maxScore, score))
}

// htmlTags lists the element names treated as markup. Anything else between
// angle brackets is ordinary text.
const htmlTags = `a|abbr|address|article|aside|b|big|blockquote|body|br|caption|center|cite|code|col|` +
	`dd|del|details|dfn|div|dl|dt|em|figcaption|figure|font|footer|h[1-6]|head|header|hr|html|i|img|ins|` +
	`kbd|label|li|link|main|mark|meta|nav|ol|p|pre|q|s|samp|script|section|small|span|strike|strong|` +
	`style|sub|summary|sup|table|tbody|td|tfoot|th|thead|title|tr|tt|u|ul|var`

var markupPattern = regexp.MustCompile(`(?i)<!--.*?-->|<!doctype[^>]*>|</?(?:` + htmlTags + `)(?:\s[^>]*)?/?>`)

// blockElements get a separator appended so flattened text does not run together.
const blockElements = "p, div, li, br, tr, h1, h2, h3, h4, h5, h6, blockquote"

// maxFlattenPasses bounds how many layers of entity-escaped markup are unwrapped.
const maxFlattenPasses = 3

// Normalize trims a value and flattens rich-text markup to plain text.
// The result never contains markup, so normalizing it again is a no-op.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if !markupPattern.MatchString(value) {
		return value
	}

	for pass := 0; pass < maxFlattenPasses && markupPattern.MatchString(value); pass++ {
		flat, ok := flatten(value)
		if !ok || flat == value {
			break
		}
		value = flat
	}

	if markupPattern.MatchString(value) {
		value = markupPattern.ReplaceAllString(value, " ")
	}
	return strings.Join(strings.Fields(value), " ")
}

// flatten parses value as an HTML fragment and returns its text content with
// entities decoded.
func flatten(value string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(escapeStrayBrackets(value)))
	if err != nil {
		return "", false
	}
	doc.Find("script, style").Remove()
	doc.Find(blockElements).AfterHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " "), true
}

// escapeStrayBrackets escapes every '<' that does not open recognised markup
// so text such as "x<y>z" survives parsing.
func escapeStrayBrackets(value string) string {
	var b strings.Builder
	last := 0
	for _, loc := range markupPattern.FindAllStringIndex(value, -1) {
		b.WriteString(strings.ReplaceAll(value[last:loc[0]], "<", "&lt;"))
		b.WriteString(value[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(strings.ReplaceAll(value[last:], "<", "&lt;"))
	return b.String()
}
