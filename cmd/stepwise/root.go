package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "Stepwise is an execution-trace engine for teaching how code runs",
	Long:  `Stepwise simulates source snippets line by line and replays the resulting trace on an interactive timeline.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a stepwise config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
