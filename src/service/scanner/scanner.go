// Package scanner computes per-file structural metrics: line counts,
// approximate cyclomatic complexity, declaration counts, duplicate
// blocks, and import/export lists. Whole-buffer line scans; files are
// bounded by the provider's size cap upstream.
package scanner

import (
	"regexp"
	"strings"

	"codeinsight/src/model"
)

// FileFacts holds the metrics-relevant facts for a single file
type FileFacts struct {
	Path         string
	Language     model.Language
	TotalLines   int
	CodeLines    int // excludes blank and comment-prefixed lines
	CommentLines int
	Functions    int
	Classes      int
	Cyclomatic   int // keyword-frequency approximation, +1 baseline
	Duplicates   []DuplicatePair
	Imports      []string
	Exports      []string
}

// commentPrefixes maps each language to its line-comment prefixes
var commentPrefixes = map[model.Language][]string{
	model.LangJavaScript: {"//", "/*", "*"},
	model.LangTypeScript: {"//", "/*", "*"},
	model.LangJava:       {"//", "/*", "*"},
	model.LangC:          {"//", "/*", "*"},
	model.LangCPP:        {"//", "/*", "*"},
	model.LangCSharp:     {"//", "/*", "*"},
	model.LangGo:         {"//", "/*", "*"},
	model.LangRust:       {"//", "/*", "*"},
	model.LangSwift:      {"//", "/*", "*"},
	model.LangKotlin:     {"//", "/*", "*"},
	model.LangPHP:        {"//", "#", "/*", "*"},
	model.LangPython:     {"#"},
	model.LangRuby:       {"#"},
}

var (
	functionDeclPattern = regexp.MustCompile(`\bfunction\b|\bfunc\b|\bdef\b|\bfn\b|=>`)
	classDeclPattern    = regexp.MustCompile(`\bclass\b|\bstruct\b|\binterface\b`)
	decisionPattern     = regexp.MustCompile(`\bif\b|\bfor\b|\bwhile\b|\bcase\b|\bcatch\b|&&|\|\||\?`)
)

// Scan computes the structural facts for one source unit. It never fails:
// unusual source text degrades to zero counts, not errors.
func Scan(unit model.SourceUnit) FileFacts {
	lines := unit.Lines()
	facts := FileFacts{
		Path:       unit.Path,
		Language:   unit.Language,
		TotalLines: len(lines),
		Cyclomatic: 1,
	}

	prefixes := commentPrefixes[unit.Language]

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if isComment(trimmed, prefixes) {
			facts.CommentLines++
			continue
		}

		facts.CodeLines++
		facts.Functions += len(functionDeclPattern.FindAllStringIndex(trimmed, -1))
		facts.Classes += len(classDeclPattern.FindAllStringIndex(trimmed, -1))
		facts.Cyclomatic += len(decisionPattern.FindAllStringIndex(trimmed, -1))
	}

	facts.Duplicates = findDuplicateBlocks(lines)
	facts.Imports, facts.Exports = extractImportsExports(unit.Language, lines)

	return facts
}

func isComment(trimmed string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// Issues converts the scanner's duplicate findings into duplication issues
func Issues(unit model.SourceUnit, facts FileFacts) []model.Issue {
	var issues []model.Issue
	for _, dup := range facts.Duplicates {
		issues = append(issues, model.Issue{
			Type:        model.TypeDuplication,
			Severity:    model.SeverityMedium,
			Title:       "Duplicated code block",
			Description: dup.describe(),
			File:        unit.Path,
			Line:        dup.FirstLine,
			Suggestion:  "Extract the repeated block into a shared function",
			Impact:      "Changes must be applied in multiple places and drift over time",
			Effort:      model.EffortMedium,
		})
	}
	return issues
}
