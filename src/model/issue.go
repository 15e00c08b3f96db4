package model

// Severity represents the severity level of an issue
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityRank returns the ordering rank of a severity
// (critical=4 > high=3 > medium=2 > low=1)
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ValidSeverity reports whether s is a known severity value
func ValidSeverity(s Severity) bool {
	return SeverityRank(s) > 0
}

// IssueType represents the category of a quality issue
type IssueType string

const (
	TypeSecurity        IssueType = "security"
	TypePerformance     IssueType = "performance"
	TypeComplexity      IssueType = "complexity"
	TypeDuplication     IssueType = "duplication"
	TypeTesting         IssueType = "testing"
	TypeDocumentation   IssueType = "documentation"
	TypeMaintainability IssueType = "maintainability"
)

// TypeRank returns the prioritization rank of an issue type
// (security=4 > performance=3 > complexity=2 > testing=1, others 0)
func TypeRank(t IssueType) int {
	switch t {
	case TypeSecurity:
		return 4
	case TypePerformance:
		return 3
	case TypeComplexity:
		return 2
	case TypeTesting:
		return 1
	default:
		return 0
	}
}

// ValidIssueType reports whether t is a known issue type
func ValidIssueType(t IssueType) bool {
	switch t {
	case TypeSecurity, TypePerformance, TypeComplexity, TypeDuplication,
		TypeTesting, TypeDocumentation, TypeMaintainability:
		return true
	}
	return false
}

// Effort estimates the work needed to fix an issue
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// ValidEffort reports whether e is a known effort value
func ValidEffort(e Effort) bool {
	switch e {
	case EffortLow, EffortMedium, EffortHigh:
		return true
	}
	return false
}

// ProjectScope is the sentinel file value for project-wide issues
const ProjectScope = "project"

// Issue represents a single detected quality finding.
// Issues are created by exactly one producer and never mutated afterwards.
type Issue struct {
	ID          string    `json:"id"`
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        string    `json:"file"`
	Line        int       `json:"line,omitempty"` // 1-based, 0 when not applicable
	Suggestion  string    `json:"suggestion"`
	Impact      string    `json:"impact"`
	Effort      Effort    `json:"effort"`
}
