//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Style selects the tone of generated copy.
type Style string

// Supported styles
const (
	StyleProfessional Style = "professional"
	StyleCasual       Style = "casual"
	StyleCreative     Style = "creative"
	StyleTechnical    Style = "technical"
	StylePersuasive   Style = "persuasive"
)

// Styles lists every supported style.
var Styles = []Style{
	StyleProfessional,
	StyleCasual,
	StyleCreative,
	StyleTechnical,
	StylePersuasive,
}

// DefaultStyle is used when the caller omits a style or sends an unknown one.
const DefaultStyle = StyleProfessional

// ParseStyle normalizes s to a supported style, defaulting to professional.
func ParseStyle(s string) Style {
	candidate := Style(strings.ToLower(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate
	}
	return DefaultStyle
}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	for _, known := range Styles {
		if s == known {
			return true
		}
	}
	return false
}

func (s Style) String() string {
	return string(s)
}
