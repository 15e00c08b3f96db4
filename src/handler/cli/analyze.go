package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeinsight/src/controller"
	"codeinsight/src/service/genai"
	"codeinsight/src/service/report"
	"codeinsight/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		path      string
		outputDir string
		format    string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a directory for quality issues",
		Long:  "Runs all enabled detectors and the metrics scanner against a source tree and generates a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			util.Info("Analyzing %s (timeout: %v)", path, timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			gen := genai.NewClient(h.cfg.GenAI)
			analysisCtrl := controller.NewAnalysisController(h.cfg, gen)
			rep, _, err := analysisCtrl.Analyze(ctx, path)
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			// Output results
			if outputDir != "" {
				h.cfg.Output.OutputDir = outputDir
				if format != "" {
					h.cfg.Output.Formats = []string{format}
				}

				reportCtrl := controller.NewReportController(h.cfg)
				paths, err := reportCtrl.WriteReports(rep)
				if err != nil {
					return fmt.Errorf("writing reports: %w", err)
				}
				for _, p := range paths {
					fmt.Printf("Report written to %s\n", p)
				}
			} else {
				// Output to stdout
				reportCtrl := controller.NewReportController(h.cfg)
				outputFormat := format
				if outputFormat == "" {
					outputFormat = "json"
				}

				output, err := reportCtrl.RenderToString(rep, outputFormat)
				if err != nil {
					// Fallback to raw JSON
					data, _ := json.MarshalIndent(rep, "", "  ")
					fmt.Println(string(data))
				} else {
					fmt.Println(output)
				}
			}

			// Print summary to stderr
			fmt.Fprintf(os.Stderr, "\nAnalysis complete:\n")
			fmt.Fprintf(os.Stderr, "  Files analyzed: %d\n", rep.Summary.TotalFiles)
			fmt.Fprintf(os.Stderr, "  Total issues:   %d (%s)\n",
				rep.Summary.IssueCount, report.FormatSeverityBreakdown(rep.Summary.SeverityBreakdown))
			fmt.Fprintf(os.Stderr, "  Maintainability: %d/10\n", rep.Metrics.MaintainabilityIndex)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Directory to analyze")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, sarif)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	return cmd
}
