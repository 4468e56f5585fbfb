package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const goodBody = "Solar pumps bring steady water to small farms without a diesel bill. " +
	"Panels on a simple frame drive the pump whenever the sun is up. " +
	"Farmers report greener fields through the dry months and fewer trips to buy fuel. " +
	"Cooperatives can share maintenance and spread the upfront cost across members."

func hasIssue(report Report, kind IssueKind) bool {
	for _, issue := range report.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

func TestIsLowQuality_GoodBody(t *testing.T) {
	report := Check(goodBody, []string{"Solar-powered irrigation for smallholder farms", "rural cooperatives"})
	assert.True(t, report.OK(), "unexpected issues: %v", report.Issues)
	assert.False(t, IsLowQuality(goodBody, nil))
}

func TestIsLowQuality_ShortBody(t *testing.T) {
	body := strings.Repeat("x", MinBodyChars-1)
	report := Check(body, nil)

	assert.True(t, IsLowQuality(body, nil))
	assert.True(t, hasIssue(report, IssueTooShort))
}

func TestIsLowQuality_EmptyBody(t *testing.T) {
	assert.True(t, IsLowQuality("", nil))
	assert.True(t, IsLowQuality("   \n\n  ", nil))
}

func TestCheck_ValueEcho(t *testing.T) {
	var sb strings.Builder
	openers := []string{"Many", "Some", "Local", "Nearby", "Upland", "Coastal"}
	for _, opener := range openers {
		sb.WriteString(opener + " farms now water their crops with sunlight. ")
	}
	body := sb.String()

	report := Check(body, []string{"farms"})
	assert.True(t, hasIssue(report, IssueValueEcho))

	// values of ten characters or more are not counted
	report = Check(body, []string{"farms now water"})
	assert.False(t, hasIssue(report, IssueValueEcho))
}

func TestCheck_FewSentences(t *testing.T) {
	body := "This single sentence goes on and on without ever stopping, describing farms and water and sunshine at length. Short. Tiny."
	report := Check(body, nil)
	assert.True(t, hasIssue(report, IssueFewSentences))
}

func TestCheck_RepetitiveOpenings(t *testing.T) {
	var sentences []string
	for i := 0; i < 45; i++ {
		sentences = append(sentences, fmt.Sprintf("Our solar pump keeps crops growing in field number %d", i))
	}
	sentences = append(sentences,
		"Farmers across the valley save on diesel every season",
		"Panels last for decades with almost no maintenance",
		"Cooperatives share the upfront cost between members",
		"Water arrives exactly when the plants need it most",
		"Harvests grow larger while running costs fall steadily",
	)
	body := strings.Join(sentences, ". ") + "."

	report := Check(body, nil)
	assert.True(t, IsLowQuality(body, nil))
	assert.True(t, hasIssue(report, IssueRepetitiveOpenings))
}

func TestCheckOpenings(t *testing.T) {
	tests := []struct {
		name      string
		sentences []string
		wantIssue bool
	}{
		{
			name:      "all distinct",
			sentences: []string{"The pump runs daily", "Farmers save fuel costs", "Panels last for decades"},
			wantIssue: false,
		},
		{
			name:      "half repeated",
			sentences: []string{"The pump runs every day", "The pump runs every night", "The pump runs every week", "Panels last for decades"},
			wantIssue: true,
		},
		{
			name:      "short sentences ignored",
			sentences: []string{"Yes indeed", "Yes indeed", "Yes indeed", "Panels last for decades"},
			wantIssue: false,
		},
		{
			name:      "no sentences",
			sentences: nil,
			wantIssue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report Report
			checkOpenings(&report, tt.sentences)
			assert.Equal(t, tt.wantIssue, hasIssue(report, IssueRepetitiveOpenings))
		})
	}
}

func TestCheckWordFrequency(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIssue bool
	}{
		{"dominant long word", "irrigation irrigation irrigation water flows here now and then too", true},
		{"short words ignored", "the the the the the cat sat on a mat", false},
		{"balanced", goodBody, false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report Report
			checkWordFrequency(&report, tt.body)
			assert.Equal(t, tt.wantIssue, hasIssue(report, IssueOverusedWord))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one!  Third one?? ... trailing")
	assert.Equal(t, []string{"First one", "Second one", "Third one", "trailing"}, got)
}
