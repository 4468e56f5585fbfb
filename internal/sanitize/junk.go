// Package sanitize assesses caller-supplied field values, dropping junk and scoring what remains.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Reason names the predicate that classified a value as junk.
type Reason string

// Junk reasons, in evaluation order
const (
	ReasonTooShort        Reason = "too_short"
	ReasonPlaceholder     Reason = "placeholder"
	ReasonLettersOnly     Reason = "one_or_two_letters"
	ReasonDigitsOnly      Reason = "digits_only"
	ReasonDominantChar    Reason = "dominant_character"
	ReasonRepeatingUnit   Reason = "repeating_unit"
	ReasonRepetitiveWords Reason = "repetitive_words"
)

const minValueChars = 4

// Placeholders are values callers leave behind when they have nothing to say.
var Placeholders = []string{
	"hi", "hello", "hey", "test", "testing", "null", "none", "nil",
	"undefined", "placeholder", "example", "sample", "asdf", "qwerty",
	"tbd", "n/a", "lorem ipsum",
}

var (
	lettersOnlyPattern = regexp.MustCompile(`^[\p{L}]{1,2}$`)
	digitsOnlyPattern  = regexp.MustCompile(`^[0-9]+$`)
)

type predicate struct {
	reason Reason
	match  func(value, lower string) bool
}

// predicates run in order; the first match classifies the value.
var predicates = []predicate{
	{ReasonTooShort, func(v, _ string) bool { return utf8.RuneCountInString(v) < minValueChars }},
	{ReasonPlaceholder, func(_, lower string) bool { return isPlaceholder(lower) }},
	{ReasonLettersOnly, func(v, _ string) bool { return lettersOnlyPattern.MatchString(v) }},
	{ReasonDigitsOnly, func(v, _ string) bool { return digitsOnlyPattern.MatchString(v) }},
	{ReasonDominantChar, func(_, lower string) bool { return hasDominantChar(lower) }},
	{ReasonRepeatingUnit, func(_, lower string) bool { return isRepeatingUnit(lower) }},
	{ReasonRepetitiveWords, func(_, lower string) bool { return hasRepetitiveWords(lower) }},
}

// Classify reports whether a trimmed value is junk and which predicate caught it.
func Classify(value string) (Reason, bool) {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)
	for _, p := range predicates {
		if p.match(value, lower) {
			return p.reason, true
		}
	}
	return "", false
}

// IsJunk reports whether value carries no usable content.
func IsJunk(value string) bool {
	_, junk := Classify(value)
	return junk
}

func isPlaceholder(lower string) bool {
	for _, p := range Placeholders {
		if lower == p {
			return true
		}
	}
	return false
}

// hasDominantChar reports whether one character makes up more than half the value.
func hasDominantChar(lower string) bool {
	runes := []rune(lower)
	if len(runes) == 0 {
		return false
	}
	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
		if counts[r]*2 > len(runes) {
			return true
		}
	}
	return false
}

// isRepeatingUnit reports whether the value is a 2-4 character unit repeated
// at least twice with nothing left over ("hihi", "testtest", "abcabcabc").
func isRepeatingUnit(lower string) bool {
	runes := []rune(lower)
	for period := 2; period <= 4; period++ {
		if len(runes) < period*2 || len(runes)%period != 0 {
			continue
		}
		repeats := true
		for i := period; i < len(runes); i++ {
			if runes[i] != runes[i%period] {
				repeats = false
				break
			}
		}
		if repeats {
			return true
		}
	}
	return false
}

// hasRepetitiveWords reports whether a multi-word value has fewer than 50% unique words.
func hasRepetitiveWords(lower string) bool {
	words := strings.Fields(lower)
	if len(words) < 2 {
		return false
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return len(unique)*2 < len(words)
}

// ContainsDoubledPlaceholder reports whether value contains a placeholder
// written twice in a row, such as "hihi" or "testtest".
func ContainsDoubledPlaceholder(value string) bool {
	lower := strings.ToLower(value)
	for _, p := range Placeholders {
		if strings.Contains(p, " ") || strings.Contains(p, "/") {
			continue
		}
		if strings.Contains(lower, p+p) {
			return true
		}
	}
	return false
}

// CharDiversity returns the number of distinct characters divided by the length.
func CharDiversity(value string) float64 {
	runes := []rune(value)
	if len(runes) == 0 {
		return 0
	}
	distinct := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		distinct[r] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(runes))
}
