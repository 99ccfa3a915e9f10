package graph

import (
	"fmt"
	"strings"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	rig "github.com/miriamsimone/video-generation-pipeline/pkg/graph"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Current domain.Expression
}

// GenerateMermaid produces a Mermaid flowchart syntax string from the
// rig's expression edge table. It applies semantic styling:
// - neutral: ((Circle)), it is the hub every route passes through
// - viseme buckets (speaking_*, oh_round): [/Parallelogram/]
// - everything else: [Rectangle]
// Edges restricted to the center pose render as dotted lines; edges
// available at every pose render solid. The current expression is
// highlighted if an overlay is provided.
func GenerateMermaid(edges []rig.Edge, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	seen := make(map[domain.Expression]bool)
	declare := func(expr domain.Expression) {
		if seen[expr] {
			return
		}
		seen[expr] = true

		opener, closer := "[", "]"
		switch {
		case expr == domain.ExprNeutral:
			opener, closer = "((", "))"
		case isViseme(expr):
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(string(expr)), opener, expr, closer))
	}

	for _, e := range edges {
		declare(e.Start)
		declare(e.End)
	}
	for _, e := range edges {
		arrow := "-. center only .-"
		if e.Scope == rig.ScopeAllPoses {
			arrow = "--- "
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n",
			sanitizeMermaidID(string(e.Start)), strings.TrimRight(arrow, " "), sanitizeMermaidID(string(e.End))))
	}

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.Current))))
	}

	return sb.String()
}

func isViseme(expr domain.Expression) bool {
	return strings.HasPrefix(string(expr), "speaking_") || expr == domain.ExprOhRound
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
