package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miriamsimone/video-generation-pipeline/internal/cli"
)

// visemesCmd represents the visemes command
var visemesCmd = &cobra.Command{
	Use:   "visemes <phonemes.json>",
	Short: "Build the viseme keyframe track from a phoneme alignment",
	Long: `Reads aligner output (a JSON array of start_ms/end_ms/label
intervals) and emits the mouth-shape keyframe track: vowels mapped to
their viseme bucket, consonant+vowel pairs conjoined, rapid changes
suppressed, and a trailing return to neutral. Use "-" to read stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunVisemes(os.Stdout, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(visemesCmd)
}
