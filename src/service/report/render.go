package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeinsight/src/model"
	"codeinsight/src/util"
)

// Renderer renders reports in various export formats
type Renderer struct{}

// NewRenderer creates a new report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render renders a report in the specified format
func (r *Renderer) Render(report *model.Report, format string) (string, error) {
	util.Debug("Rendering report in %s format (%d issues)", format, len(report.Issues))
	switch format {
	case "json":
		return r.renderJSON(report)
	case "markdown", "md":
		return r.renderMarkdown(report)
	case "sarif":
		return r.renderSARIF(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (r *Renderer) renderJSON(report *model.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Renderer) renderMarkdown(report *model.Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Code Quality Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Files analyzed:** %d\n", report.Summary.TotalFiles))
	sb.WriteString(fmt.Sprintf("- **Total lines:** %d\n", report.Summary.TotalLines))
	sb.WriteString(fmt.Sprintf("- **Languages:** %s\n", strings.Join(report.Summary.Languages, ", ")))
	sb.WriteString(fmt.Sprintf("- **Total issues:** %d\n\n", report.Summary.IssueCount))

	sb.WriteString("### Issues by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, report.Summary.SeverityBreakdown[sev]))
	}
	sb.WriteString("\n")

	sb.WriteString("### Quality Metrics\n\n")
	sb.WriteString(fmt.Sprintf("- **Code complexity:** %d/10\n", report.Metrics.CodeComplexity))
	sb.WriteString(fmt.Sprintf("- **Test coverage estimate:** %d%%\n", report.Metrics.TestCoverage))
	sb.WriteString(fmt.Sprintf("- **Duplication:** %d%%\n", report.Metrics.DuplicationPercentage))
	sb.WriteString(fmt.Sprintf("- **Maintainability index:** %d/100\n\n", report.Metrics.MaintainabilityIndex))

	if len(report.Recommendations) > 0 {
		sb.WriteString("## Recommendations\n\n")
		for _, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Issues\n\n")
	for _, issue := range report.Issues {
		sb.WriteString(fmt.Sprintf("#### %s %s\n\n", severityTag(issue.Severity), issue.Title))
		if issue.Line > 0 {
			sb.WriteString(fmt.Sprintf("- **File:** `%s:%d`\n", issue.File, issue.Line))
		} else {
			sb.WriteString(fmt.Sprintf("- **File:** `%s`\n", issue.File))
		}
		sb.WriteString(fmt.Sprintf("- **Type:** %s\n", issue.Type))
		sb.WriteString(fmt.Sprintf("- **Severity:** %s\n", issue.Severity))
		sb.WriteString(fmt.Sprintf("- **Description:** %s\n", issue.Description))
		if issue.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("- **Suggestion:** %s\n", issue.Suggestion))
		}
		if issue.Impact != "" {
			sb.WriteString(fmt.Sprintf("- **Impact:** %s\n", issue.Impact))
		}
		sb.WriteString(fmt.Sprintf("- **Effort:** %s\n\n", issue.Effort))
	}

	return sb.String(), nil
}

func (r *Renderer) renderSARIF(report *model.Report) (string, error) {
	sarif := map[string]any{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":    "codeinsight",
						"version": "1.0.0",
						"rules":   r.buildSARIFRules(report.Issues),
					},
				},
				"results": r.buildSARIFResults(report.Issues),
			},
		},
	}

	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Renderer) buildSARIFRules(issues []model.Issue) []map[string]any {
	ruleMap := make(map[string]bool)
	var rules []map[string]any

	for _, issue := range issues {
		ruleID := string(issue.Type) + "/" + slug(issue.Title)
		if ruleMap[ruleID] {
			continue
		}
		ruleMap[ruleID] = true

		rules = append(rules, map[string]any{
			"id":   ruleID,
			"name": issue.Title,
			"shortDescription": map[string]any{
				"text": issue.Description,
			},
			"defaultConfiguration": map[string]any{
				"level": sarifLevel(issue.Severity),
			},
		})
	}

	return rules
}

func (r *Renderer) buildSARIFResults(issues []model.Issue) []map[string]any {
	var results []map[string]any

	for _, issue := range issues {
		line := issue.Line
		if line < 1 {
			line = 1
		}

		result := map[string]any{
			"ruleId":  string(issue.Type) + "/" + slug(issue.Title),
			"level":   sarifLevel(issue.Severity),
			"message": map[string]any{"text": issue.Description},
			"locations": []map[string]any{
				{
					"physicalLocation": map[string]any{
						"artifactLocation": map[string]any{
							"uri": issue.File,
						},
						"region": map[string]any{
							"startLine": line,
						},
					},
				},
			},
		}

		if issue.Suggestion != "" {
			result["fixes"] = []map[string]any{
				{
					"description": map[string]any{"text": issue.Suggestion},
				},
			}
		}

		results = append(results, result)
	}

	return results
}

func slug(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func severityTag(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "[CRITICAL]"
	case model.SeverityHigh:
		return "[HIGH]"
	case model.SeverityMedium:
		return "[MEDIUM]"
	default:
		return "[LOW]"
	}
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return "error"
	case model.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
