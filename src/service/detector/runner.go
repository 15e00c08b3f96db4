package detector

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/util"
)

// Runner fans the registered detectors out across source units.
// Detection per unit is pure, so units run concurrently up to the
// configured worker cap; results are collected per unit to keep the
// combined sequence deterministic.
type Runner struct {
	detectors []Detector
	workers   int
}

// NewRunner creates a runner with all enabled detectors registered
func NewRunner(cfg *config.Config) *Runner {
	var detectors []Detector
	if cfg.Detectors.Security {
		detectors = append(detectors, NewSecurityDetector())
	}
	if cfg.Detectors.Performance {
		detectors = append(detectors, NewPerformanceDetector())
	}
	if cfg.Detectors.Complexity {
		detectors = append(detectors, NewComplexityDetector())
	}

	workers := cfg.Analyzer.MaxWorkers
	if workers <= 0 {
		workers = 1
	}

	util.Debug("Detector runner initialized with %d detectors (max workers: %d)", len(detectors), workers)
	return &Runner{detectors: detectors, workers: workers}
}

// RunAll executes every detector against every unit and returns the
// combined issues. The only error it can return is a context
// cancellation; partial results are discarded in that case.
func (r *Runner) RunAll(ctx context.Context, units []model.SourceUnit) ([]model.Issue, error) {
	startTime := time.Now()
	util.Info("Running %d detectors over %d files", len(r.detectors), len(units))

	perUnit := make([][]model.Issue, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range units {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var issues []model.Issue
			for _, d := range r.detectors {
				issues = append(issues, d.Detect(units[i])...)
			}
			perUnit[i] = issues
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Issue
	for _, issues := range perUnit {
		all = append(all, issues...)
	}

	util.Info("Detection complete: %d issues found (took %v)", len(all), time.Since(startTime))
	return all, nil
}

// ListDetectors returns names of all registered detectors
func (r *Runner) ListDetectors() []string {
	names := make([]string, len(r.detectors))
	for i, d := range r.detectors {
		names[i] = d.Name()
	}
	return names
}
