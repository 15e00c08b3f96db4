package session

import "codeinsight/src/model"

// maxSuggestedQuestions caps the suggestion list
const maxSuggestedQuestions = 8

// baselineQuestions are always present, in this order
var baselineQuestions = []string{
	"What are the most critical issues in this codebase?",
	"How can I improve the overall code quality?",
	"What should I prioritize fixing first?",
}

// typeQuestions maps each issue type to its conditioned question, in
// fixed type order
var typeQuestions = []struct {
	issueType model.IssueType
	question  string
}{
	{model.TypeSecurity, "How do I fix the reported security vulnerabilities?"},
	{model.TypePerformance, "Which performance issues have the biggest impact?"},
	{model.TypeComplexity, "Which functions should be refactored to reduce complexity?"},
	{model.TypeDuplication, "Where is the duplicated code and how should it be consolidated?"},
	{model.TypeTesting, "What parts of the code most need test coverage?"},
	{model.TypeDocumentation, "What documentation is missing from this project?"},
	{model.TypeMaintainability, "What maintainability problems should I address?"},
}

// SuggestedQuestions is a pure function of the report: baseline questions,
// then per-type questions for each issue type present, then
// threshold-triggered questions, capped at the maximum. Deterministic
// order.
func SuggestedQuestions(rep *model.Report) []string {
	questions := make([]string, 0, maxSuggestedQuestions)
	questions = append(questions, baselineQuestions...)

	present := make(map[model.IssueType]bool)
	for _, issue := range rep.Issues {
		present[issue.Type] = true
	}

	for _, entry := range typeQuestions {
		if present[entry.issueType] {
			questions = append(questions, entry.question)
		}
	}

	if rep.Metrics.TestCoverage < 50 {
		questions = append(questions, "What testing strategy would raise coverage fastest?")
	}
	if rep.Metrics.CodeComplexity > 7 {
		questions = append(questions, "How can the overall complexity of this codebase be reduced?")
	}
	if rep.Metrics.DuplicationPercentage > 20 {
		questions = append(questions, "What is the best way to eliminate the code duplication?")
	}

	if len(questions) > maxSuggestedQuestions {
		questions = questions[:maxSuggestedQuestions]
	}
	return questions
}
