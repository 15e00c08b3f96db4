// Package report aggregates issue streams into the final prioritized
// Report and renders it for export.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"codeinsight/src/model"
	"codeinsight/src/util"
)

// Build merges all issue streams into a deterministically ordered Report.
// The sort here is the single source of truth for final issue order.
// Fails with ErrNoInput when zero source units are supplied.
func Build(units []model.SourceUnit, issues []model.Issue) (*model.Report, error) {
	if len(units) == 0 {
		return nil, model.ErrNoInput
	}

	ordered := make([]model.Issue, len(issues))
	copy(ordered, issues)

	// Stable: ties beyond severity and type retain arrival order
	sort.SliceStable(ordered, func(a, b int) bool {
		sa, sb := model.SeverityRank(ordered[a].Severity), model.SeverityRank(ordered[b].Severity)
		if sa != sb {
			return sa > sb
		}
		return model.TypeRank(ordered[a].Type) > model.TypeRank(ordered[b].Type)
	})

	assignIDs(ordered)

	report := &model.Report{
		Summary:         buildSummary(units, ordered),
		Issues:          ordered,
		Metrics:         deriveMetrics(units, ordered),
		Recommendations: buildRecommendations(ordered),
		GeneratedAt:     time.Now().UTC(),
	}

	util.Info("Report built: %d issues across %d files", len(ordered), len(units))
	return report, nil
}

// assignIDs fills ids for issues whose producer did not assign one.
// Ids must be unique within a Report; model-extracted issues already
// carry uuids, so a type-sequence scheme cannot collide with them.
func assignIDs(issues []model.Issue) {
	for i := range issues {
		if issues[i].ID == "" {
			issues[i].ID = fmt.Sprintf("%s-%04d", issues[i].Type, i+1)
		}
	}
}

func buildSummary(units []model.SourceUnit, issues []model.Issue) model.ReportSummary {
	totalLines := 0
	langSet := make(map[model.Language]bool)
	for _, unit := range units {
		totalLines += len(unit.Lines())
		langSet[unit.Language] = true
	}

	languages := make([]string, 0, len(langSet))
	for lang := range langSet {
		languages = append(languages, string(lang))
	}
	sort.Strings(languages)

	// Buckets default to 0 when absent
	breakdown := map[model.Severity]int{
		model.SeverityCritical: 0,
		model.SeverityHigh:     0,
		model.SeverityMedium:   0,
		model.SeverityLow:      0,
	}
	for _, issue := range issues {
		breakdown[issue.Severity]++
	}

	return model.ReportSummary{
		TotalFiles:        len(units),
		TotalLines:        totalLines,
		Languages:         languages,
		IssueCount:        len(issues),
		SeverityBreakdown: breakdown,
	}
}

// deriveMetrics computes the four derived metrics, each clamped to its
// documented range
func deriveMetrics(units []model.SourceUnit, issues []model.Issue) model.QualityMetrics {
	byType := make(map[model.IssueType]int)
	for _, issue := range issues {
		byType[issue.Type]++
	}

	fileCount := float64(len(units))

	complexity := int(math.Round(10 * float64(byType[model.TypeComplexity]) / fileCount))
	if complexity > 10 {
		complexity = 10
	}

	coverage := int(math.Round(100 - 20*float64(byType[model.TypeTesting])))
	if coverage < 0 {
		coverage = 0
	}

	duplication := int(math.Round(5 * float64(byType[model.TypeDuplication])))
	if duplication > 50 {
		duplication = 50
	}

	maintainability := int(math.Round(100 - 10*float64(len(issues))/fileCount))
	if maintainability < 0 {
		maintainability = 0
	}

	return model.QualityMetrics{
		CodeComplexity:        complexity,
		TestCoverage:          coverage,
		DuplicationPercentage: duplication,
		MaintainabilityIndex:  maintainability,
	}
}

// recommendationOrder fixes the category order of the nudges
var recommendationOrder = []struct {
	issueType model.IssueType
	message   string
}{
	{model.TypeSecurity, "Address security vulnerabilities first; they carry the highest risk"},
	{model.TypePerformance, "Profile and fix the flagged performance hotspots"},
	{model.TypeTesting, "Strengthen the test suite before further refactoring"},
	{model.TypeComplexity, "Refactor the most complex functions to simplify future changes"},
	{model.TypeDocumentation, "Document the public API and add a project README"},
}

// buildRecommendations is a deterministic function of which issue types
// are non-empty, not of counts
func buildRecommendations(issues []model.Issue) []string {
	present := make(map[model.IssueType]bool)
	for _, issue := range issues {
		present[issue.Type] = true
	}

	var recs []string
	for _, entry := range recommendationOrder {
		if present[entry.issueType] {
			recs = append(recs, entry.message)
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "No significant issues found; keep up the good practices")
	}
	return recs
}

// FormatSeverityBreakdown renders the breakdown in fixed severity order
func FormatSeverityBreakdown(breakdown map[model.Severity]int) string {
	parts := make([]string, 0, 4)
	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		parts = append(parts, fmt.Sprintf("%s: %d", sev, breakdown[sev]))
	}
	return strings.Join(parts, ", ")
}
