package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/miriamsimone/video-generation-pipeline/internal/cli"
	"github.com/miriamsimone/video-generation-pipeline/internal/logging"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a sequence directory over HTTP",
	Long: `Starts the sequence store server: manifests under /timeline/{path_id},
frame images under /frames/{path_id}/{file}, the inventory under
/timelines, and Prometheus metrics on a separate listener.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := cli.LoadServeConfig(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("dir") {
			cfg.Store.Dir, _ = cmd.Flags().GetString("dir")
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}

		level := slog.LevelInfo
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		if err := cli.RunServe(cfg, logger); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
	serveCmd.Flags().String("dir", "./sequences", "Sequence directory to serve")
	serveCmd.Flags().String("listen", ":8080", "Address to listen on")
}
