package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/util"
)

// truncationMarker is appended when a file is cut to the content budget
const truncationMarker = "\n... [truncated]"

// Extractor batches source units, prompts the model for issues, and
// defensively parses the replies. Every failure mode degrades to an empty
// result; extraction never aborts the pipeline.
type Extractor struct {
	gen           TextGenerator
	enabled       bool
	batchSize     int
	batchWorkers  int
	contentBudget int
}

// enabler lets the extractor skip calls when the client has no credentials
type enabler interface {
	Enabled() bool
}

// NewExtractor creates a model-assisted issue extractor. A nil or
// credential-less generator yields an extractor that returns empty
// results rather than failing, so the pipeline runs as pure static
// analysis.
func NewExtractor(gen TextGenerator, cfg config.AnalyzerConfig) *Extractor {
	enabled := gen != nil
	if e, ok := gen.(enabler); ok {
		enabled = e.Enabled()
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}
	batchWorkers := cfg.BatchWorkers
	if batchWorkers <= 0 {
		batchWorkers = 1
	}
	contentBudget := cfg.ContentBudget
	if contentBudget <= 0 {
		contentBudget = 2000
	}

	return &Extractor{
		gen:           gen,
		enabled:       enabled,
		batchSize:     batchSize,
		batchWorkers:  batchWorkers,
		contentBudget: contentBudget,
	}
}

// ExtractIssues runs the model pass over all units in fixed-size batches.
// Batches run concurrently up to the worker cap; results are collected
// per batch slot, so order within a batch always matches the parsed
// response and the final sequence is deterministic.
func (e *Extractor) ExtractIssues(ctx context.Context, units []model.SourceUnit) []model.Issue {
	if !e.enabled || len(units) == 0 {
		return nil
	}

	batches := e.partition(units)
	results := make([][]model.Issue, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.batchWorkers)

	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.extractBatch(gctx, batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Cancelled mid-flight: partial results are discarded, not reported
		util.Warn("Model extraction cancelled: %v", err)
		return nil
	}

	var all []model.Issue
	for _, issues := range results {
		all = append(all, issues...)
	}

	util.Info("Model extraction complete: %d issues from %d batches", len(all), len(batches))
	return all
}

func (e *Extractor) partition(units []model.SourceUnit) [][]model.SourceUnit {
	var batches [][]model.SourceUnit
	for start := 0; start < len(units); start += e.batchSize {
		end := start + e.batchSize
		if end > len(units) {
			end = len(units)
		}
		batches = append(batches, units[start:end])
	}
	return batches
}

// extractBatch prompts the model for one batch and parses the reply.
// Any transport or parse failure yields an empty slice.
func (e *Extractor) extractBatch(ctx context.Context, batch []model.SourceUnit) []model.Issue {
	prompt := e.buildPrompt(batch)

	reply, err := e.gen.GenerateText(ctx, prompt)
	if err != nil {
		util.Warn("Model call failed for batch of %d files: %v", len(batch), err)
		return nil
	}

	issues, perr := parseIssues(reply, batch[0].Path)
	if perr != nil {
		util.Warn("Discarding unparseable model reply: %v", perr)
		return nil
	}
	return issues
}

func (e *Extractor) buildPrompt(batch []model.SourceUnit) string {
	var sb strings.Builder
	sb.WriteString("You are a code reviewer. Analyze the following files for quality issues ")
	sb.WriteString("(security, performance, complexity, duplication, testing, documentation, maintainability).\n")
	sb.WriteString("Respond with ONLY a JSON array of issue objects with fields: ")
	sb.WriteString(`"type", "severity" (low|medium|high|critical), "title", "description", "file", "line", "suggestion", "impact", "effort" (low|medium|high).` + "\n\n")

	for _, unit := range batch {
		sb.WriteString(fmt.Sprintf("=== File: %s (%s) ===\n", unit.Path, unit.Language))
		sb.WriteString(e.truncate(unit.Content))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// truncate cuts content to the fixed character budget, appending a marker
// when content was cut. Bounds prompt size independent of file size.
func (e *Extractor) truncate(content string) string {
	if len(content) <= e.contentBudget {
		return content
	}
	return content[:e.contentBudget] + truncationMarker
}

// rawIssue mirrors the JSON shape the prompt asks for; every field is
// optional because the reply is untrusted text
type rawIssue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Suggestion  string `json:"suggestion"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
}

// parseIssues locates the first bracketed array substring in the raw
// reply (greedy bracket match), parses it, and fills documented defaults
// for missing fields. Absence of an array or a parse failure returns a
// ParseError; callers recover with an empty result.
func parseIssues(reply, defaultFile string) ([]model.Issue, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, &model.ParseError{Reason: "no bracketed array in reply"}
	}

	var raw []rawIssue
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, &model.ParseError{Reason: err.Error()}
	}

	issues := make([]model.Issue, 0, len(raw))
	for _, r := range raw {
		issues = append(issues, normalizeIssue(r, defaultFile))
	}
	return issues, nil
}

// normalizeIssue substitutes the documented defaults for missing or
// invalid fields and assigns a unique id
func normalizeIssue(r rawIssue, defaultFile string) model.Issue {
	issueType := model.IssueType(r.Type)
	if !model.ValidIssueType(issueType) {
		issueType = model.TypeMaintainability
	}

	severity := model.Severity(r.Severity)
	if !model.ValidSeverity(severity) {
		severity = model.SeverityMedium
	}

	effort := model.Effort(r.Effort)
	if !model.ValidEffort(effort) {
		effort = model.EffortMedium
	}

	file := r.File
	if file == "" {
		file = defaultFile
	}

	title := r.Title
	if title == "" {
		title = "Code quality issue"
	}

	suggestion := r.Suggestion
	if suggestion == "" {
		suggestion = "Review this code section for improvements"
	}

	impact := r.Impact
	if impact == "" {
		impact = "May affect code quality and maintainability"
	}

	line := r.Line
	if line < 1 {
		line = 0
	}

	return model.Issue{
		ID:          uuid.NewString(),
		Type:        issueType,
		Severity:    severity,
		Title:       title,
		Description: r.Description,
		File:        file,
		Line:        line,
		Suggestion:  suggestion,
		Impact:      impact,
		Effort:      effort,
	}
}
