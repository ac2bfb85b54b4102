package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edulab/stepwise/internal/cli"
)

var traceCmd = &cobra.Command{
	Use:   "trace [file]",
	Short: "Print the full execution trace of a snippet",
	Long:  `Builds the step-by-step trace of a source file (or stdin) and prints it as a table, NDJSON, or a Mermaid flowchart.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		language, _ := cmd.Flags().GetString("language")
		format, _ := cmd.Flags().GetString("format")
		forCap, _ := cmd.Flags().GetInt("for-cap")
		whileCap, _ := cmd.Flags().GetInt("while-cap")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.RunTrace(cli.TraceOptions{
			Path:     path,
			Language: language,
			Format:   format,
			ForCap:   forCap,
			WhileCap: whileCap,
			Debug:    debug,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringP("language", "l", "", "Language tag (inferred from the file extension when omitted)")
	traceCmd.Flags().StringP("format", "f", "table", "Output format: table, json or mermaid")
	traceCmd.Flags().Int("for-cap", 0, "Max simulated for-loop iterations")
	traceCmd.Flags().Int("while-cap", 0, "Max simulated while-loop iterations")
}
