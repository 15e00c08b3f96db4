package session

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeinsight/src/model"
)

func largeReport(issueCount int) *model.Report {
	issues := make([]model.Issue, issueCount)
	for i := range issues {
		issues[i] = model.Issue{
			ID:       fmt.Sprintf("id-%d", i),
			Type:     model.TypeComplexity,
			Severity: model.SeverityMedium,
			Title:    fmt.Sprintf("issue-%d", i),
			File:     fmt.Sprintf("f%d.js", i),
			Line:     i + 1,
		}
	}
	return &model.Report{
		Summary: model.ReportSummary{
			TotalFiles:        20,
			TotalLines:        4000,
			Languages:         []string{"javascript"},
			IssueCount:        issueCount,
			SeverityBreakdown: map[model.Severity]int{model.SeverityMedium: issueCount},
		},
		Issues:      issues,
		Metrics:     model.QualityMetrics{CodeComplexity: 5, TestCoverage: 70, MaintainabilityIndex: 60},
		GeneratedAt: time.Now().UTC(),
	}
}

func manyUnits(n int) []model.SourceUnit {
	units := make([]model.SourceUnit, n)
	for i := range units {
		units[i] = model.NewSourceUnit(fmt.Sprintf("f%d.js", i), "x\n", model.LangJavaScript)
	}
	return units
}

func turnsOf(n, answerLen int) []Turn {
	turns := make([]Turn, n)
	for i := range turns {
		turns[i] = Turn{
			Question: fmt.Sprintf("question-%d", i),
			Answer:   strings.Repeat("a", answerLen),
			AskedAt:  time.Now().UTC(),
		}
	}
	return turns
}

func TestBuildContextCapsTopIssues(t *testing.T) {
	ctx := BuildContext(largeReport(500), manyUnits(3), nil)

	assert.Contains(t, ctx, "Top 10 issues:")
	assert.Contains(t, ctx, "issue-9")
	assert.NotContains(t, ctx, "issue-10 (")
	assert.NotContains(t, ctx, "issue-499")
}

func TestBuildContextCapsFileListing(t *testing.T) {
	ctx := BuildContext(largeReport(1), manyUnits(20), nil)

	assert.Contains(t, ctx, "(+15 more)")
}

func TestBuildContextCapsHistory(t *testing.T) {
	ctx := BuildContext(largeReport(1), manyUnits(1), turnsOf(50, 500))

	assert.Contains(t, ctx, "question-49")
	assert.Contains(t, ctx, "question-48")
	assert.Contains(t, ctx, "question-47")
	assert.NotContains(t, ctx, "question-46")

	// Answers are truncated to the cap plus an ellipsis
	assert.Contains(t, ctx, strings.Repeat("a", 200)+"...")
	assert.NotContains(t, ctx, strings.Repeat("a", 201))
}

func TestBuildContextSizeIndependentOfSessionLength(t *testing.T) {
	rep := largeReport(500)
	units := manyUnits(20)

	// Same turns repeated: the assembled context must not grow with
	// session length once past the history cap
	base := turnsOf(3, 500)
	long := append(append(append([]Turn{}, base...), base...), base...)

	short := BuildContext(rep, units, base)
	extended := BuildContext(rep, units, long)

	assert.Equal(t, len(short), len(extended))
}

func TestBuildContextIncludesMetricsAndSummary(t *testing.T) {
	ctx := BuildContext(largeReport(2), manyUnits(2), nil)

	assert.Contains(t, ctx, "Files analyzed: 20, total lines: 4000")
	assert.Contains(t, ctx, "Test coverage estimate: 70%")
	assert.Contains(t, ctx, "Maintainability index: 60/100")
	assert.Contains(t, ctx, "Languages: javascript")
}

func TestBuildContextNoHistorySection(t *testing.T) {
	ctx := BuildContext(largeReport(1), manyUnits(1), nil)
	assert.NotContains(t, ctx, "Recent conversation:")
}

func TestSuggestedQuestionsBaseline(t *testing.T) {
	rep := largeReport(0)
	rep.Issues = nil
	rep.Metrics = model.QualityMetrics{TestCoverage: 90, CodeComplexity: 2, DuplicationPercentage: 0}

	questions := SuggestedQuestions(rep)

	require.Len(t, questions, 3)
	assert.Equal(t, baselineQuestions, questions)
}

func TestSuggestedQuestionsPerTypeAndThresholds(t *testing.T) {
	rep := largeReport(1)
	rep.Issues = []model.Issue{
		{Type: model.TypeSecurity},
		{Type: model.TypeTesting},
	}
	rep.Metrics = model.QualityMetrics{TestCoverage: 30, CodeComplexity: 2, DuplicationPercentage: 0}

	questions := SuggestedQuestions(rep)

	require.Len(t, questions, 6)
	assert.Equal(t, baselineQuestions, questions[:3])
	assert.Contains(t, questions[3], "security")
	assert.Contains(t, questions[4], "test coverage")
	assert.Contains(t, questions[5], "testing strategy")
}

func TestSuggestedQuestionsCapped(t *testing.T) {
	rep := largeReport(1)
	rep.Issues = []model.Issue{
		{Type: model.TypeSecurity}, {Type: model.TypePerformance},
		{Type: model.TypeComplexity}, {Type: model.TypeDuplication},
		{Type: model.TypeTesting}, {Type: model.TypeDocumentation},
		{Type: model.TypeMaintainability},
	}
	rep.Metrics = model.QualityMetrics{TestCoverage: 10, CodeComplexity: 9, DuplicationPercentage: 40}

	questions := SuggestedQuestions(rep)

	assert.Len(t, questions, maxSuggestedQuestions)
}

func TestSuggestedQuestionsDeterministic(t *testing.T) {
	rep := largeReport(5)

	first := SuggestedQuestions(rep)
	second := SuggestedQuestions(rep)

	assert.Equal(t, first, second)
}
