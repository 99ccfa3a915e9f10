package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	facerig "github.com/miriamsimone/video-generation-pipeline"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of facerig",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("facerig version %s\n", strings.TrimSpace(facerig.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
