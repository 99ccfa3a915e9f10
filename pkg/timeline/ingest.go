package timeline

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// rawExpressionKeyframe matches the wire shape external planners emit.
// mapstructure tags mirror the JSON keys of the export format.
type rawExpressionKeyframe struct {
	TimeMs       int64  `mapstructure:"time_ms"`
	TargetExpr   string `mapstructure:"target_expr"`
	TransitionMs int64  `mapstructure:"transition_duration_ms"`

	// Reason is the planner's justification for the keyframe. Ignored by
	// the compositor but accepted so planner payloads pass strict decoding.
	Reason string `mapstructure:"reason"`
}

type rawPoseKeyframe struct {
	TimeMs     int64  `mapstructure:"time_ms"`
	TargetPose string `mapstructure:"target_pose"`
}

// IngestExpressionKeyframes validates an ordered keyframe list from an
// external planner and appends it to the expression track. The whole batch
// is rejected on the first malformed entry; nothing is partially applied.
func IngestExpressionKeyframes(tr *Tracks, raw []map[string]any) error {
	decoded := make([]domain.ExpressionKeyframe, 0, len(raw))
	var lastTime int64 = -1
	for i, entry := range raw {
		var rk rawExpressionKeyframe
		if err := decodeStrict(entry, &rk); err != nil {
			return fmt.Errorf("%w: keyframe %d: %v", domain.ErrMalformedTrack, i, err)
		}
		kf := domain.ExpressionKeyframe{
			TimeMs:       rk.TimeMs,
			Expression:   domain.Expression(rk.TargetExpr),
			TransitionMs: rk.TransitionMs,
		}
		if err := validateExpressionKeyframe(kf.TimeMs, kf.Expression, kf.TransitionMs); err != nil {
			return fmt.Errorf("keyframe %d: %w", i, err)
		}
		if kf.TimeMs < lastTime {
			return fmt.Errorf("%w: keyframe %d out of order", domain.ErrMalformedTrack, i)
		}
		lastTime = kf.TimeMs
		decoded = append(decoded, kf)
	}

	for _, kf := range decoded {
		if err := tr.AddExpression(kf); err != nil {
			return err
		}
	}
	return nil
}

// IngestPoseKeyframes validates and appends a pose keyframe list.
func IngestPoseKeyframes(tr *Tracks, raw []map[string]any) error {
	decoded := make([]domain.PoseKeyframe, 0, len(raw))
	var lastTime int64 = -1
	for i, entry := range raw {
		var rk rawPoseKeyframe
		if err := decodeStrict(entry, &rk); err != nil {
			return fmt.Errorf("%w: keyframe %d: %v", domain.ErrMalformedTrack, i, err)
		}
		kf := domain.PoseKeyframe{TimeMs: rk.TimeMs, Pose: domain.Pose(rk.TargetPose)}
		if kf.TimeMs < 0 {
			return fmt.Errorf("%w: keyframe %d has negative time", domain.ErrMalformedTrack, i)
		}
		if !kf.Pose.Valid() {
			return fmt.Errorf("keyframe %d: %w: %q", i, domain.ErrUnknownPose, kf.Pose)
		}
		if kf.TimeMs < lastTime {
			return fmt.Errorf("%w: keyframe %d out of order", domain.ErrMalformedTrack, i)
		}
		lastTime = kf.TimeMs
		decoded = append(decoded, kf)
	}

	for _, kf := range decoded {
		if err := tr.AddPose(kf); err != nil {
			return err
		}
	}
	return nil
}

// decodeStrict decodes a raw map, failing on unknown keys so typos in
// driver payloads surface instead of silently dropping fields.
func decodeStrict(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
