package detector

import (
	"regexp"
	"strings"

	"codeinsight/src/model"
)

// maxInlineLiteralLen is the per-line length threshold for the oversized
// inline literal rule.
const maxInlineLiteralLen = 500

// PerformanceDetector detects performance anti-patterns. Most rules are
// per-line; nested loops and listener leaks need file-level context and
// run as content checks.
type PerformanceDetector struct {
	rules []lineRule
}

// NewPerformanceDetector creates a new performance detector
func NewPerformanceDetector() *PerformanceDetector {
	return &PerformanceDetector{rules: performanceRules}
}

// Name returns the detector name
func (d *PerformanceDetector) Name() string {
	return "performance"
}

// Detect runs performance detection on a single source unit
func (d *PerformanceDetector) Detect(unit model.SourceUnit) []model.Issue {
	issues := scanLines(unit, d.rules)
	issues = append(issues, d.detectNestedLoops(unit)...)
	issues = append(issues, d.detectListenerLeak(unit)...)
	issues = append(issues, d.detectOversizedLiterals(unit)...)
	return issues
}

var performanceRules = []lineRule{
	{
		pattern:    regexp.MustCompile(`(?i)\.(?:forEach|map)\s*\(\s*(?:async\s+)?[^)]*(?:\bquery\b|\bfind(?:One|ById)?\b|\bfetch\b|\bselect\b)`),
		title:      "Possible N+1 query pattern",
		descr:      "A database or network lookup is issued once per element of a collection",
		severity:   model.SeverityMedium,
		suggestion: "Batch the lookups into a single query or prefetch the related records",
		impact:     "Latency grows linearly with collection size",
		effort:     model.EffortMedium,
		issueType:  model.TypePerformance,
	},
	{
		pattern:    regexp.MustCompile(`(?i)(?:readFileSync|writeFileSync|execSync|spawnSync)\s*\(|\btime\.sleep\s*\(|\bThread\.sleep\s*\(`),
		title:      "Blocking I/O call",
		descr:      "A synchronous blocking call can stall the event loop or worker thread",
		severity:   model.SeverityMedium,
		suggestion: "Use the asynchronous variant of the call",
		impact:     "Throughput drops while the call blocks",
		effort:     model.EffortLow,
		issueType:  model.TypePerformance,
	},
}

// nestedLoopPattern matches three loop headers opening within one file
// region. It is a heuristic, not a parse: inner blocks without braces or
// unusual formatting can evade it.
var nestedLoopPattern = regexp.MustCompile(`(?s)\b(?:for|while)\b[^\n{]*\{[^{}]*\b(?:for|while)\b[^\n{]*\{[^{}]*\b(?:for|while)\b`)

func (d *PerformanceDetector) detectNestedLoops(unit model.SourceUnit) []model.Issue {
	loc := nestedLoopPattern.FindStringIndex(unit.Content)
	if loc == nil {
		return nil
	}

	line := strings.Count(unit.Content[:loc[0]], "\n") + 1
	return []model.Issue{{
		Type:        model.TypePerformance,
		Severity:    model.SeverityHigh,
		Title:       "Deeply nested loops",
		Description: "Three or more nested loops multiply iteration counts",
		File:        unit.Path,
		Line:        line,
		Suggestion:  "Restructure with lookup maps or extract the inner work into indexed passes",
		Impact:      "Runtime grows with the product of the loop bounds",
		Effort:      model.EffortHigh,
	}}
}

var (
	addListenerPattern    = regexp.MustCompile(`\.addEventListener\s*\(|\.on\s*\(\s*['"]`)
	removeListenerPattern = regexp.MustCompile(`\.removeEventListener\s*\(|\.off\s*\(\s*['"]|\.removeListener\s*\(`)
)

func (d *PerformanceDetector) detectListenerLeak(unit model.SourceUnit) []model.Issue {
	loc := addListenerPattern.FindStringIndex(unit.Content)
	if loc == nil || removeListenerPattern.MatchString(unit.Content) {
		return nil
	}

	line := strings.Count(unit.Content[:loc[0]], "\n") + 1
	return []model.Issue{{
		Type:        model.TypePerformance,
		Severity:    model.SeverityMedium,
		Title:       "Event listener without teardown",
		Description: "Listeners are registered but never removed anywhere in the file",
		File:        unit.Path,
		Line:        line,
		Suggestion:  "Remove listeners when the owning component or resource is torn down",
		Impact:      "Leaked listeners accumulate memory and fire on stale state",
		Effort:      model.EffortLow,
	}}
}

func (d *PerformanceDetector) detectOversizedLiterals(unit model.SourceUnit) []model.Issue {
	var issues []model.Issue
	for i, line := range unit.Lines() {
		if len(line) > maxInlineLiteralLen {
			issues = append(issues, model.Issue{
				Type:        model.TypePerformance,
				Severity:    model.SeverityLow,
				Title:       "Oversized inline literal",
				Description: "A single line carries a very large inline literal",
				File:        unit.Path,
				Line:        i + 1,
				Suggestion:  "Move the data to a separate resource file loaded at runtime",
				Impact:      "Bloats the parsed module and resists code review",
				Effort:      model.EffortLow,
			})
		}
	}
	return issues
}
