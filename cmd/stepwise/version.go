package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edulab/stepwise"
	"github.com/edulab/stepwise/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stepwise",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner()
		fmt.Printf("stepwise version %s\n", stepwise.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
