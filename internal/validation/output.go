// Package validation rejects generated body text that is too thin or too repetitive to serve.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinBodyChars is the shortest body text accepted from the model
	MinBodyChars = 100

	// values shorter than this are checked for being echoed back verbatim
	shortValueChars  = 10
	maxValueEchoes   = 5
	minSentences     = 3
	minSentenceChars = 10

	// sentence openings are compared on their first openingWords words
	openingWords         = 4
	minWordsForOpening   = 3
	minOpeningUniqueness = 0.6

	// words longer than this count toward the overuse check
	frequentWordChars = 4
	maxWordShare      = 0.12
)

// IssueKind identifies a failed quality check.
type IssueKind string

// Quality checks applied to body text
const (
	IssueTooShort           IssueKind = "too_short"
	IssueValueEcho          IssueKind = "value_echo"
	IssueFewSentences       IssueKind = "few_sentences"
	IssueRepetitiveOpenings IssueKind = "repetitive_openings"
	IssueOverusedWord       IssueKind = "overused_word"
)

// Issue describes one failed check.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// Report lists every check the body failed.
type Report struct {
	Issues []Issue `json:"issues,omitempty"`
}

// OK reports whether the body passed every check.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) add(kind IssueKind, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	wordPattern   = regexp.MustCompile(`[\p{L}\p{N}]+(?:'[\p{L}]+)?`)
)

// IsLowQuality reports whether body should be discarded in favor of fallback copy.
func IsLowQuality(body string, cleanedValues []string) bool {
	return !Check(body, cleanedValues).OK()
}

// Check runs every quality check against body.
func Check(body string, cleanedValues []string) Report {
	var report Report

	if n := utf8.RuneCountInString(strings.TrimSpace(body)); n < MinBodyChars {
		report.add(IssueTooShort, "body has %d characters, need %d", n, MinBodyChars)
	}

	checkValueEchoes(&report, body, cleanedValues)

	sentences := splitSentences(body)
	checkSentenceCount(&report, sentences)
	checkOpenings(&report, sentences)
	checkWordFrequency(&report, body)

	return report
}

// checkValueEchoes flags short input values pasted into the body over and over.
func checkValueEchoes(report *Report, body string, values []string) {
	lower := strings.ToLower(body)
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || utf8.RuneCountInString(v) >= shortValueChars {
			continue
		}
		if count := strings.Count(lower, v); count > maxValueEchoes {
			report.add(IssueValueEcho, "%q appears %d times", v, count)
		}
	}
}

func splitSentences(body string) []string {
	parts := sentenceSplit.Split(body, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func checkSentenceCount(report *Report, sentences []string) {
	usable := 0
	for _, s := range sentences {
		if utf8.RuneCountInString(s) > minSentenceChars {
			usable++
		}
	}
	if usable < minSentences {
		report.add(IssueFewSentences, "%d usable sentences, need %d", usable, minSentences)
	}
}

// checkOpenings flags bodies where many sentences start with the same words.
func checkOpenings(report *Report, sentences []string) {
	total := 0
	openings := make(map[string]struct{})
	for _, s := range sentences {
		words := strings.Fields(strings.ToLower(s))
		if len(words) < minWordsForOpening {
			continue
		}
		total++
		openings[strings.Join(words[:min(openingWords, len(words))], " ")] = struct{}{}
	}
	if total == 0 {
		return
	}
	if ratio := float64(len(openings)) / float64(total); ratio < minOpeningUniqueness {
		report.add(IssueRepetitiveOpenings, "%d distinct openings across %d sentences", len(openings), total)
	}
}

// checkWordFrequency flags a single long word dominating the text.
func checkWordFrequency(report *Report, body string) {
	words := wordPattern.FindAllString(strings.ToLower(body), -1)
	if len(words) == 0 {
		return
	}

	counts := make(map[string]int)
	top, topCount := "", 0
	for _, w := range words {
		if utf8.RuneCountInString(w) <= frequentWordChars {
			continue
		}
		counts[w]++
		if counts[w] > topCount {
			top, topCount = w, counts[w]
		}
	}

	if float64(topCount) > maxWordShare*float64(len(words)) {
		report.add(IssueOverusedWord, "%q is %d of %d words", top, topCount, len(words))
	}
}
