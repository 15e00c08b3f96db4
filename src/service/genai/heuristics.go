package genai

import (
	"fmt"
	"strings"

	"codeinsight/src/model"
	"codeinsight/src/service/detector"
)

// Heuristic passes colocated with the model extractor. These are not
// model calls: testing and documentation coverage come from cheap path
// and declaration checks.

// coverageRatioThreshold is the test-to-source ratio below which a
// low-coverage issue is emitted
const coverageRatioThreshold = 0.3

var testMarkers = []string{"test", "spec", "__tests__"}

// isTestFile reports whether a path carries a test/spec marker
func isTestFile(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range testMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// CoverageIssues emits testing issues from the test-file ratio: one high
// "no tests" issue when no unit is test-marked, otherwise one medium
// "low coverage" issue when the ratio falls under the threshold.
func CoverageIssues(units []model.SourceUnit) []model.Issue {
	testFiles := 0
	for _, unit := range units {
		if isTestFile(unit.Path) {
			testFiles++
		}
	}

	if testFiles == 0 {
		return []model.Issue{{
			Type:        model.TypeTesting,
			Severity:    model.SeverityHigh,
			Title:       "No test files found",
			Description: fmt.Sprintf("None of the %d analyzed files carries a test or spec marker", len(units)),
			File:        model.ProjectScope,
			Suggestion:  "Add a test suite covering the core modules",
			Impact:      "Regressions ship undetected",
			Effort:      model.EffortHigh,
		}}
	}

	sourceFiles := len(units) - testFiles
	if sourceFiles == 0 {
		return nil
	}

	ratio := float64(testFiles) / float64(sourceFiles)
	if ratio >= coverageRatioThreshold {
		return nil
	}

	return []model.Issue{{
		Type:        model.TypeTesting,
		Severity:    model.SeverityMedium,
		Title:       "Low test coverage",
		Description: fmt.Sprintf("Only %d test files for %d source files (ratio %.2f)", testFiles, sourceFiles, ratio),
		File:        model.ProjectScope,
		Suggestion:  "Increase test coverage for the least-tested modules",
		Impact:      "Large portions of the codebase are unverified",
		Effort:      model.EffortMedium,
	}}
}

// docMarkers are the comment prefixes accepted as documentation when they
// appear in the three lines preceding a declaration
var docMarkers = []string{"//", "/*", "*", "#", `"""`, "'''", "///"}

// DocumentationIssues emits documentation issues: one medium issue when
// no unit path contains "readme", and one low issue per file counting
// declarations without a doc comment in the preceding 3 lines.
func DocumentationIssues(units []model.SourceUnit) []model.Issue {
	var issues []model.Issue

	hasReadme := false
	for _, unit := range units {
		if strings.Contains(strings.ToLower(unit.Path), "readme") {
			hasReadme = true
			break
		}
	}
	if !hasReadme {
		issues = append(issues, model.Issue{
			Type:        model.TypeDocumentation,
			Severity:    model.SeverityMedium,
			Title:       "Missing README",
			Description: "The project has no README file",
			File:        model.ProjectScope,
			Suggestion:  "Add a README describing purpose, setup, and usage",
			Impact:      "New contributors lack an entry point",
			Effort:      model.EffortLow,
		})
	}

	for _, unit := range units {
		if count := undocumentedDeclarations(unit); count > 0 {
			issues = append(issues, model.Issue{
				Type:        model.TypeDocumentation,
				Severity:    model.SeverityLow,
				Title:       "Undocumented functions",
				Description: fmt.Sprintf("%d declarations lack a doc comment", count),
				File:        unit.Path,
				Suggestion:  "Add doc comments to the public declarations",
				Impact:      "Intent must be reverse-engineered from the implementation",
				Effort:      model.EffortLow,
			})
		}
	}

	return issues
}

func undocumentedDeclarations(unit model.SourceUnit) int {
	lines := unit.Lines()
	count := 0
	for i, line := range lines {
		if !detector.IsDeclarationLine(line) {
			continue
		}
		if !hasDocComment(lines, i) {
			count++
		}
	}
	return count
}

// hasDocComment checks the 3 lines preceding index i for a doc marker
func hasDocComment(lines []string, i int) bool {
	for back := 1; back <= 3; back++ {
		j := i - back
		if j < 0 {
			break
		}
		trimmed := strings.TrimSpace(lines[j])
		for _, marker := range docMarkers {
			if strings.HasPrefix(trimmed, marker) {
				return true
			}
		}
	}
	return false
}
