// Package emotion adapts an external emotion planner into expression
// track updates.
//
// A planner reads the narration text alongside the phoneme timing and
// proposes expression keyframes ("smile here, look concerned there").
// Its output arrives as loosely-typed JSON; this driver fills defaults,
// validates the batch and hands it to the timeline in one shot.
package emotion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/miriamsimone/video-generation-pipeline/pkg/timeline"
	"github.com/miriamsimone/video-generation-pipeline/pkg/viseme"
)

// Planner produces expression keyframe proposals for a narration. The
// phoneme list gives the planner the utterance timing so keyframes can
// land on word boundaries.
type Planner interface {
	PlanExpressions(ctx context.Context, narration string, phonemes []viseme.Phoneme) ([]map[string]any, error)
}

// Driver connects a Planner to a timeline.
type Driver struct {
	planner Planner
	log     *slog.Logger
}

// New creates a driver around planner.
func New(planner Planner, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{planner: planner, log: log}
}

// Apply asks the planner for keyframes and ingests them into the
// expression track. Keyframes without an explicit transition get the
// standard expression transition. The batch is all-or-nothing: a single
// malformed keyframe rejects the whole plan.
func (d *Driver) Apply(ctx context.Context, tr *timeline.Tracks, narration string, phonemes []viseme.Phoneme) error {
	raw, err := d.planner.PlanExpressions(ctx, narration, phonemes)
	if err != nil {
		return fmt.Errorf("emotion: plan: %w", err)
	}
	FillDefaults(raw)
	if err := timeline.IngestExpressionKeyframes(tr, raw); err != nil {
		return fmt.Errorf("emotion: ingest plan: %w", err)
	}
	d.log.Info("emotion plan applied", "keyframes", len(raw))
	return nil
}

// FillDefaults sets the standard transition on keyframes that omit it.
// It mutates the raw batch in place, before validation.
func FillDefaults(raw []map[string]any) {
	for _, entry := range raw {
		v, ok := entry["transition_duration_ms"]
		if !ok || isZero(v) {
			entry["transition_duration_ms"] = viseme.DefaultTransitionMs
		}
	}
}

func isZero(v any) bool {
	switch n := v.(type) {
	case int:
		return n == 0
	case int64:
		return n == 0
	case float64:
		return n == 0
	default:
		return false
	}
}
