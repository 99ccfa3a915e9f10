package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miriamsimone/video-generation-pipeline/internal/presentation/graph"
	"github.com/miriamsimone/video-generation-pipeline/internal/presentation/tui"
	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	rig "github.com/miriamsimone/video-generation-pipeline/pkg/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the expression graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the expression edge table:
which facial states connect directly, which edges exist at every pose
and which only at center.`,
	Run: func(cmd *cobra.Command, args []string) {
		var overlay *graph.GraphOverlay
		if current, _ := cmd.Flags().GetString("current"); current != "" {
			overlay = &graph.GraphOverlay{Current: domain.Expression(current)}
		}

		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			tui.PrintBanner()
			render := tui.NewRenderer()
			out, err := render("```mermaid\n" + graph.GenerateMermaid(rig.DefaultEdges(), overlay) + "```\n")
			if err == nil {
				fmt.Print(out)
				return
			}
			// Fall through to the plain export on render failure.
		}
		fmt.Print(graph.GenerateMermaid(rig.DefaultEdges(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("current", "", "Highlight an expression in the diagram")
	graphCmd.Flags().Bool("pretty", false, "Render with banner and terminal styling")
}
