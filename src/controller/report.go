package controller

import (
	"os"
	"path/filepath"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/service/report"
	"codeinsight/src/util"
)

// ReportController handles report rendering and export
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// WriteReports renders the report in all configured formats and writes
// them to the output directory
func (c *ReportController) WriteReports(rep *model.Report) ([]string, error) {
	util.Debug("Writing reports in %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	renderer := report.NewRenderer()
	var outputPaths []string

	for _, format := range c.cfg.Output.Formats {
		output, err := renderer.Render(rep, format)
		if err != nil {
			util.Error("Failed to render %s report: %v", format, err)
			return nil, err
		}

		outputPath := c.outputPath(format)

		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return nil, err
		}

		if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
			util.Error("Failed to write report to %s: %v", outputPath, err)
			return nil, err
		}

		util.Info("Report written: %s", outputPath)
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// RenderToString renders the report in one format
func (c *ReportController) RenderToString(rep *model.Report, format string) (string, error) {
	return report.NewRenderer().Render(rep, format)
}

func (c *ReportController) outputPath(format string) string {
	ext := format
	if format == "markdown" {
		ext = "md"
	}
	if format == "sarif" {
		ext = "sarif.json"
	}

	return filepath.Join(c.cfg.Output.OutputDir, "quality-report."+ext)
}
