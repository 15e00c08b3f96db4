package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("codeinsight %s\n", h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) detectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available detectors:")
			fmt.Println("  - security    : Injection sinks, hardcoded secrets, unsafe randomness")
			fmt.Println("  - performance : Nested loops, N+1 queries, blocking calls, leaks")
			fmt.Println("  - complexity  : Function length, cyclomatic complexity, nesting, parameters")
			fmt.Println("")
			fmt.Println("Always-on passes:")
			fmt.Println("  - metrics     : Line counts, duplicate blocks, imports/exports")
			fmt.Println("  - coverage    : Test presence heuristics")
			fmt.Println("  - docs        : README and doc comment heuristics")
		},
	}
}
