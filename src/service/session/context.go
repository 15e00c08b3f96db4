package session

import (
	"fmt"
	"sort"
	"strings"

	"codeinsight/src/model"
	"codeinsight/src/service/report"
)

// Context bounds. The assembled document must not grow with session
// length; these caps are what keep repeated Q&A calls within the model's
// input limits regardless of how long a session runs.
const (
	maxContextIssues    = 10
	maxFilesPerLanguage = 5
	maxHistoryTurns     = 3
	maxAnswerChars      = 200
)

// BuildContext assembles the bounded natural-language context document
// for one question: report summary, severity breakdown, derived metrics,
// top issues, a capped per-language file listing, and the most recent
// history turns with truncated answers.
func BuildContext(rep *model.Report, units []model.SourceUnit, history []Turn) string {
	var sb strings.Builder

	sb.WriteString("Code quality analysis context:\n\n")
	sb.WriteString(fmt.Sprintf("Files analyzed: %d, total lines: %d\n", rep.Summary.TotalFiles, rep.Summary.TotalLines))
	sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(rep.Summary.Languages, ", ")))
	sb.WriteString(fmt.Sprintf("Total issues: %d (%s)\n\n", rep.Summary.IssueCount,
		report.FormatSeverityBreakdown(rep.Summary.SeverityBreakdown)))

	sb.WriteString("Quality metrics:\n")
	sb.WriteString(fmt.Sprintf("- Code complexity: %d/10\n", rep.Metrics.CodeComplexity))
	sb.WriteString(fmt.Sprintf("- Test coverage estimate: %d%%\n", rep.Metrics.TestCoverage))
	sb.WriteString(fmt.Sprintf("- Duplication: %d%%\n", rep.Metrics.DuplicationPercentage))
	sb.WriteString(fmt.Sprintf("- Maintainability index: %d/100\n\n", rep.Metrics.MaintainabilityIndex))

	writeTopIssues(&sb, rep.Issues)
	writeFileListing(&sb, units)
	writeRecentHistory(&sb, history)

	return sb.String()
}

func writeTopIssues(sb *strings.Builder, issues []model.Issue) {
	count := len(issues)
	if count > maxContextIssues {
		count = maxContextIssues
	}
	if count == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("Top %d issues:\n", count))
	for _, issue := range issues[:count] {
		location := issue.File
		if issue.Line > 0 {
			location = fmt.Sprintf("%s:%d", issue.File, issue.Line)
		}
		sb.WriteString(fmt.Sprintf("- [%s/%s] %s (%s): %s | suggestion: %s | impact: %s | effort: %s\n",
			issue.Severity, issue.Type, issue.Title, location,
			issue.Description, issue.Suggestion, issue.Impact, issue.Effort))
	}
	sb.WriteString("\n")
}

func writeFileListing(sb *strings.Builder, units []model.SourceUnit) {
	byLanguage := make(map[model.Language][]string)
	for _, unit := range units {
		byLanguage[unit.Language] = append(byLanguage[unit.Language], unit.Path)
	}

	languages := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		languages = append(languages, string(lang))
	}
	sort.Strings(languages)

	sb.WriteString("Files by language:\n")
	for _, lang := range languages {
		paths := byLanguage[model.Language(lang)]
		shown := paths
		if len(shown) > maxFilesPerLanguage {
			shown = shown[:maxFilesPerLanguage]
		}
		sb.WriteString(fmt.Sprintf("- %s: %s", lang, strings.Join(shown, ", ")))
		if extra := len(paths) - len(shown); extra > 0 {
			sb.WriteString(fmt.Sprintf(" (+%d more)", extra))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeRecentHistory(sb *strings.Builder, history []Turn) {
	if len(history) == 0 {
		return
	}

	start := len(history) - maxHistoryTurns
	if start < 0 {
		start = 0
	}

	sb.WriteString("Recent conversation:\n")
	for _, turn := range history[start:] {
		answer := turn.Answer
		if len(answer) > maxAnswerChars {
			answer = answer[:maxAnswerChars] + "..."
		}
		sb.WriteString(fmt.Sprintf("Q: %s\nA: %s\n", turn.Question, answer))
	}
	sb.WriteString("\n")
}
