package controller

import (
	"context"
	"time"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/service/detector"
	"codeinsight/src/service/genai"
	"codeinsight/src/service/report"
	"codeinsight/src/service/scanner"
	"codeinsight/src/service/source"
	"codeinsight/src/util"
)

// AnalysisController orchestrates the quality analysis pipeline
type AnalysisController struct {
	cfg *config.Config
	gen genai.TextGenerator
}

// NewAnalysisController creates a new analysis controller. The generator
// may be a credential-less client; the pipeline then runs as pure static
// analysis.
func NewAnalysisController(cfg *config.Config, gen genai.TextGenerator) *AnalysisController {
	return &AnalysisController{cfg: cfg, gen: gen}
}

// Analyze runs the full pipeline over the tree rooted at path and
// returns the report together with the source units it was built from
// (the Q&A surface needs both). The report is produced as one atomic
// step from the complete issue set; cancellation discards partial
// results.
func (c *AnalysisController) Analyze(ctx context.Context, path string) (*model.Report, []model.SourceUnit, error) {
	startTime := time.Now()
	util.Info("Starting analysis of %s", path)

	provider := source.NewProvider(c.cfg.Analyzer)
	units, err := provider.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if len(units) == 0 {
		return nil, nil, model.ErrNoInput
	}

	// Rule-based detectors, fanned out across units
	runner := detector.NewRunner(c.cfg)
	issues, err := runner.RunAll(ctx, units)
	if err != nil {
		return nil, nil, err
	}

	// Structural metrics and duplicate blocks
	for _, unit := range units {
		facts := scanner.Scan(unit)
		issues = append(issues, scanner.Issues(unit, facts)...)
	}

	// Model-assisted extraction; degrades to empty without credentials
	extractor := genai.NewExtractor(c.gen, c.cfg.Analyzer)
	issues = append(issues, extractor.ExtractIssues(ctx, units)...)

	// Coverage and documentation heuristics
	issues = append(issues, genai.CoverageIssues(units)...)
	issues = append(issues, genai.DocumentationIssues(units)...)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rep, err := report.Build(units, issues)
	if err != nil {
		return nil, nil, err
	}

	util.Info("Analysis complete: %d issues in %d files (took %v)",
		rep.Summary.IssueCount, rep.Summary.TotalFiles, time.Since(startTime))
	return rep, units, nil
}
