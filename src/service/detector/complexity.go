package detector

import (
	"fmt"
	"regexp"
	"strings"

	"codeinsight/src/model"
)

// Complexity thresholds. Fixed per rule, not configurable.
const (
	funcLinesMedium  = 50
	funcLinesHigh    = 100
	cyclomaticMedium = 10
	cyclomaticHigh   = 20
	nestingMedium    = 4
	nestingHigh      = 6
	paramsMedium     = 5
	paramsHigh       = 8
)

// ComplexityDetector tracks function boundaries with a brace-depth state
// machine: a function opens at a declaration line when none is open, and
// closes when the running brace balance returns to zero after having gone
// positive. Nested declarations are absorbed by the outer function.
type ComplexityDetector struct{}

// NewComplexityDetector creates a new complexity detector
func NewComplexityDetector() *ComplexityDetector {
	return &ComplexityDetector{}
}

// Name returns the detector name
func (d *ComplexityDetector) Name() string {
	return "complexity"
}

var decisionPattern = regexp.MustCompile(`\bif\b|\bfor\b|\bwhile\b|\bcase\b|\bcatch\b|&&|\|\||\?`)

// openFunction holds the running state for the function currently open
type openFunction struct {
	name      string
	startLine int // 1-based
	balance   int
	seenOpen  bool
	maxDepth  int
	decisions int
	params    int
}

// Detect runs complexity detection on a single source unit
func (d *ComplexityDetector) Detect(unit model.SourceUnit) []model.Issue {
	var issues []model.Issue
	var fn *openFunction

	for i, line := range unit.Lines() {
		if fn == nil {
			if IsDeclarationLine(line) {
				fn = &openFunction{
					name:      declarationName(line),
					startLine: i + 1,
					params:    countParams(line),
				}
			} else {
				continue
			}
		}

		fn.decisions += len(decisionPattern.FindAllStringIndex(line, -1))

		for _, ch := range line {
			switch ch {
			case '{':
				fn.balance++
				fn.seenOpen = true
				if depth := fn.balance - 1; depth > fn.maxDepth {
					fn.maxDepth = depth
				}
			case '}':
				fn.balance--
			}
		}

		if fn.seenOpen && fn.balance <= 0 {
			issues = append(issues, d.closeFunction(unit.Path, fn, i+1)...)
			fn = nil
		}
	}

	// Unterminated function at EOF still gets judged on what was seen
	if fn != nil && fn.seenOpen {
		issues = append(issues, d.closeFunction(unit.Path, fn, len(unit.Lines()))...)
	}

	return issues
}

// closeFunction fires the threshold checks for a completed function
func (d *ComplexityDetector) closeFunction(path string, fn *openFunction, endLine int) []model.Issue {
	var issues []model.Issue

	length := endLine - fn.startLine + 1
	if sev, ok := grade(length, funcLinesMedium, funcLinesHigh); ok {
		issues = append(issues, model.Issue{
			Type:        model.TypeComplexity,
			Severity:    sev,
			Title:       "Long function",
			Description: fmt.Sprintf("Function %s spans %d lines", fn.name, length),
			File:        path,
			Line:        fn.startLine,
			Suggestion:  "Extract smaller, single-purpose functions",
			Impact:      "Long functions are hard to test and review",
			Effort:      model.EffortMedium,
		})
	}

	cyclomatic := fn.decisions + 1
	if sev, ok := grade(cyclomatic, cyclomaticMedium, cyclomaticHigh); ok {
		issues = append(issues, model.Issue{
			Type:        model.TypeComplexity,
			Severity:    sev,
			Title:       "High cyclomatic complexity",
			Description: fmt.Sprintf("Function %s has an approximate cyclomatic complexity of %d", fn.name, cyclomatic),
			File:        path,
			Line:        fn.startLine,
			Suggestion:  "Split branching logic into separate functions or a dispatch table",
			Impact:      "Many independent paths raise the defect and test burden",
			Effort:      model.EffortMedium,
		})
	}

	if sev, ok := grade(fn.maxDepth, nestingMedium, nestingHigh); ok {
		issues = append(issues, model.Issue{
			Type:        model.TypeComplexity,
			Severity:    sev,
			Title:       "Deeply nested control flow",
			Description: fmt.Sprintf("Function %s nests %d levels deep", fn.name, fn.maxDepth),
			File:        path,
			Line:        fn.startLine,
			Suggestion:  "Reduce nesting with early returns or guard clauses",
			Impact:      "Deep nesting obscures control flow",
			Effort:      model.EffortLow,
		})
	}

	if sev, ok := grade(fn.params, paramsMedium, paramsHigh); ok {
		issues = append(issues, model.Issue{
			Type:        model.TypeComplexity,
			Severity:    sev,
			Title:       "Long parameter list",
			Description: fmt.Sprintf("Function %s takes %d parameters", fn.name, fn.params),
			File:        path,
			Line:        fn.startLine,
			Suggestion:  "Group related parameters into a struct or options object",
			Impact:      "Call sites become error-prone and hard to read",
			Effort:      model.EffortLow,
		})
	}

	return issues
}

// grade maps a measured value to a severity against the medium/high
// thresholds; ok is false when the value is under both.
func grade(value, medium, high int) (model.Severity, bool) {
	switch {
	case value > high:
		return model.SeverityHigh, true
	case value > medium:
		return model.SeverityMedium, true
	default:
		return "", false
	}
}

var namePattern = regexp.MustCompile(`(?:function|func|def|fn|class)\s+(\w+)|(?:const|let|var)\s+(\w+)\s*=`)

// declarationName extracts a best-effort entity name from a declaration line
func declarationName(line string) string {
	m := namePattern.FindStringSubmatch(line)
	if m == nil {
		return "(anonymous)"
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// countParams counts the comma-separated parameters inside the first
// parenthesis pair of a declaration line
func countParams(line string) int {
	open := strings.Index(line, "(")
	if open < 0 {
		return 0
	}
	close := strings.Index(line[open:], ")")
	if close < 0 {
		close = len(line) - open
	}
	inner := strings.TrimSpace(line[open+1 : open+close])
	if inner == "" {
		return 0
	}
	depth := 0
	params := 1
	for _, ch := range inner {
		switch ch {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				params++
			}
		}
	}
	return params
}
