package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facerig",
	Short: "facerig routes and plays pre-rendered sprite face animations",
	Long: `facerig is the toolbox around the sprite face rig: plan routes
between facial states, build viseme tracks from phoneme alignments,
flatten timelines for export, and serve a sequence directory over HTTP.`,
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
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
