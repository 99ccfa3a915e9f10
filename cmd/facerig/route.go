package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miriamsimone/video-generation-pipeline/internal/cli"
)

// routeCmd represents the route command
var routeCmd = &cobra.Command{
	Use:   "route <from> <to>",
	Short: "Plan the segment route between two states",
	Long: `Plans the sequence of pre-rendered segments connecting two facial
states. States are written as "expression@pose"; a bare expression
means the center pose, e.g. "happy_soft" or "concerned@tilt_left_small".`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		if err := cli.RunRoute(os.Stdout, args[0], args[1], asJSON); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().Bool("json", false, "Output the route as JSON")
}
