package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/graph"
)

// RunRoute plans a route between two "expr@pose" states and writes it
// to w, as JSON or as a readable listing.
func RunRoute(w io.Writer, fromArg, toArg string, asJSON bool) error {
	from, err := domain.ParseState(fromArg)
	if err != nil {
		return fmt.Errorf("invalid current state: %w", err)
	}
	to, err := domain.ParseState(toArg)
	if err != nil {
		return fmt.Errorf("invalid target state: %w", err)
	}

	route, err := graph.NewPlanner().PlanRoute(from, to)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(route)
	}

	if route.Empty() {
		fmt.Fprintln(w, "already there, nothing to play")
		return nil
	}
	fmt.Fprintf(w, "%s\n\n", route)
	for i, seg := range route {
		fmt.Fprintf(w, "%d. %-45s %s\n", i+1, seg.PathID, seg.Direction)
	}
	return nil
}
