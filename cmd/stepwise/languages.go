package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edulab/stepwise"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the language tags stepwise recognizes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, tag := range stepwise.New().Languages() {
			fmt.Println(tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
