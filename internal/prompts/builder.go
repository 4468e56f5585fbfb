package prompts

import (
	"strings"

	"github.com/jonathan/cardcopy/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const copywritingFile = "copywriting.json"

// Section labels the model is asked to emit. The response parser looks for the same labels.
const (
	LabelHeadline     = "HEADLINE"
	LabelBodyText     = "BODY_TEXT"
	LabelCallToAction = "CALL_TO_ACTION"
)

// maxTopicChars bounds a topic taken from an arbitrary field value.
const maxTopicChars = 120

// BannedPhrases are clichés the model is told never to use.
var BannedPhrases = []string{
	"comprehensive solution",
	"cutting-edge",
	"proven methodologies",
	"game-changer",
	"synergy",
	"paradigm shift",
	"best-in-class",
	"in today's fast-paced world",
	"unlock the power",
	"take it to the next level",
	"revolutionize",
}

// Tone returns the tone descriptor for a style.
func Tone(style types.Style) string {
	return MustGet(copywritingFile, "tone."+string(types.ParseStyle(string(style))))
}

// Build assembles the generation prompt for a cleaned FieldSet.
func Build(cleaned types.FieldSet, style types.Style) string {
	topic := topicFor(cleaned)
	audience := cleaned.Lookup(types.AudienceKeys...)
	if audience == "" {
		audience = MustGet(copywritingFile, "generic-audience")
	}

	var fields string
	if cleaned.Len() == 0 {
		fields = Format(MustGet(copywritingFile, "no-fields"), map[string]string{"Topic": topic})
	} else {
		fields = formatFields(cleaned)
	}

	return Format(MustGet(copywritingFile, "generate-card-copy"), map[string]string{
		"Tone":          Tone(style),
		"Topic":         topic,
		"Audience":      audience,
		"Fields":        fields,
		"BannedPhrases": strings.Join(quoted(BannedPhrases), ", "),
		"HeadlineLabel": LabelHeadline,
		"BodyLabel":     LabelBodyText,
		"CTALabel":      LabelCallToAction,
	})
}

// topicFor picks a conventional subject field, else the first value, else the generic topic.
func topicFor(cleaned types.FieldSet) string {
	if topic := cleaned.Lookup(types.SubjectKeys...); topic != "" {
		return types.Truncate(topic, maxTopicChars)
	}
	if values := cleaned.Values(); len(values) > 0 {
		return types.Truncate(values[0], maxTopicChars)
	}
	return MustGet(copywritingFile, "generic-topic")
}

func formatFields(cleaned types.FieldSet) string {
	var sb strings.Builder
	for i, f := range cleaned.Fields() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(FormatFieldName(f.Name))
		sb.WriteString(": ")
		sb.WriteString(f.Value)
	}
	return sb.String()
}

// FormatFieldName turns a machine field name into a readable label ("card_title" -> "Card Title").
func FormatFieldName(name string) string {
	spaced := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	spaced = strings.Join(strings.Fields(spaced), " ")
	return cases.Title(language.English).String(spaced)
}

func quoted(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "\"" + item + "\""
	}
	return out
}
