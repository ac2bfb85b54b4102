package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edulab/stepwise/internal/cli"
)

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Step through a snippet interactively",
	Long:  `Opens the timeline player for a source file. Use --headless to print the walkthrough sequentially instead.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		language, _ := cmd.Flags().GetString("language")
		headless, _ := cmd.Flags().GetBool("headless")
		interval, _ := cmd.Flags().GetDuration("interval")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.RunPlay(cli.PlayOptions{
			Path:     path,
			Language: language,
			Headless: headless,
			Interval: interval,
			Debug:    debug,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("language", "l", "", "Language tag (inferred from the file extension when omitted)")
	playCmd.Flags().Bool("headless", false, "Print the walkthrough without the interactive player")
	playCmd.Flags().Duration("interval", 0, "Delay between steps in headless mode, and the initial auto-play speed")
}
