package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"codeinsight/src/controller"
	"codeinsight/src/service/genai"
	"codeinsight/src/util"
)

func (h *Handler) askCmd() *cobra.Command {
	var (
		path     string
		question string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask questions about an analyzed codebase",
		Long:  "Analyzes a source tree, then answers questions about the findings. With --question a single answer is printed; otherwise an interactive prompt starts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			gen := genai.NewClient(h.cfg.GenAI)
			if !gen.Enabled() {
				util.Warn("No API key configured (%s); answers will be unavailable", h.cfg.GenAI.APIKeyEnv)
			}

			analysisCtrl := controller.NewAnalysisController(h.cfg, gen)
			rep, units, err := analysisCtrl.Analyze(ctx, path)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			qaCtrl := controller.NewQAController(h.cfg, gen)
			sess := qaCtrl.CreateSession(rep, units)

			if question != "" {
				answer, err := qaCtrl.Ask(ctx, sess.ID, question)
				if err != nil {
					return err
				}
				fmt.Println(answer)
				return nil
			}

			suggestions, _ := qaCtrl.SuggestedQuestions(sess.ID)
			fmt.Println("Suggested questions:")
			for _, q := range suggestions {
				fmt.Printf("  - %s\n", q)
			}
			fmt.Println()

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				answer, err := qaCtrl.Ask(context.Background(), sess.ID, line)
				if err != nil {
					return err
				}
				fmt.Println(answer)
				fmt.Println()
			}
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Directory to analyze")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Single question to answer (omit for interactive mode)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	return cmd
}
