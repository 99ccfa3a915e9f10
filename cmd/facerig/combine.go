package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miriamsimone/video-generation-pipeline/internal/cli"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine <tracks.json>",
	Short: "Flatten a multi-track timeline into the export keyframe list",
	Long: `Reads a track file (expression and pose keyframe payloads plus
optional phoneme intervals), resolves the three tracks against each
other and writes the combined keyframe list handed to offline video
renderers. Use "-" to read stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunCombine(os.Stdout, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
}
