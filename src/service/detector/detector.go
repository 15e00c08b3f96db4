// Package detector implements the rule-based pattern detectors. Each
// detector is a pure per-file scanner: no shared mutable state, safe to
// run concurrently across source units.
package detector

import (
	"regexp"

	"codeinsight/src/model"
)

// Detector is the interface for all pattern detectors
type Detector interface {
	// Name returns the detector name
	Name() string

	// Detect scans a single source unit and returns found issues.
	// Pure function of its input; never fails on malformed source text.
	Detect(unit model.SourceUnit) []model.Issue
}

// lineRule is a single pattern entry scanned against every physical line.
// Severity and remediation text are fixed per rule, not computed.
type lineRule struct {
	pattern    *regexp.Regexp
	title      string
	descr      string
	severity   model.Severity
	suggestion string
	impact     string
	effort     model.Effort
	issueType  model.IssueType
}

// issue builds an Issue from a rule match at a 1-based line number
func (r *lineRule) issue(path string, line int) model.Issue {
	return model.Issue{
		Type:        r.issueType,
		Severity:    r.severity,
		Title:       r.title,
		Description: r.descr,
		File:        path,
		Line:        line,
		Suggestion:  r.suggestion,
		Impact:      r.impact,
		Effort:      r.effort,
	}
}

// scanLines runs every rule against every line. Duplicate matches on the
// same line produce duplicate issues; downstream aggregation does not
// collapse near-identical findings.
func scanLines(unit model.SourceUnit, rules []lineRule) []model.Issue {
	var issues []model.Issue
	for i, line := range unit.Lines() {
		for j := range rules {
			if rules[j].pattern.MatchString(line) {
				issues = append(issues, rules[j].issue(unit.Path, i+1))
			}
		}
	}
	return issues
}

// declPattern matches function and class declaration lines across the
// supported language families. Shared by the complexity detector and the
// documentation heuristic.
var declPattern = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:public\s+|private\s+|protected\s+|static\s+|async\s+)*` +
	`(?:function\s+\w+|func\s+(?:\(\w+\s+\*?\w+\)\s+)?\w+|def\s+\w+|fn\s+\w+|class\s+\w+|` +
	`(?:const|let|var)\s+\w+\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>))`)

// IsDeclarationLine reports whether a line opens a function or class
// declaration in any supported language family.
func IsDeclarationLine(line string) bool {
	return declPattern.MatchString(line)
}
