package model

import "time"

// QualityMetrics contains derived, clamped quality metrics.
// Recomputed per analysis run, never persisted independently of its report.
type QualityMetrics struct {
	CodeComplexity        int `json:"code_complexity"`        // 0..10
	TestCoverage          int `json:"test_coverage"`          // 0..100
	DuplicationPercentage int `json:"duplication_percentage"` // 0..50
	MaintainabilityIndex  int `json:"maintainability_index"`  // 0..100
}

// ReportSummary contains aggregated statistics for one analysis run
type ReportSummary struct {
	TotalFiles        int              `json:"total_files"`
	TotalLines        int              `json:"total_lines"`
	Languages         []string         `json:"languages"`
	IssueCount        int              `json:"issue_count"`
	SeverityBreakdown map[Severity]int `json:"severity_breakdown"`
}

// Report is the complete, immutable output of one analysis run.
// Issues are ordered by severity then type priority.
type Report struct {
	Summary         ReportSummary  `json:"summary"`
	Issues          []Issue        `json:"issues"`
	Metrics         QualityMetrics `json:"metrics"`
	Recommendations []string       `json:"recommendations"`
	GeneratedAt     time.Time      `json:"generated_at"`
}
