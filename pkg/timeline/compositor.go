package timeline

import (
	"sort"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// poseTransitionMs is reported for combined keyframes where only the pose
// track changed; the pose track itself carries no transition duration.
const poseTransitionMs int64 = 500

// Resolve computes the effective state at time t.
//
// Pose is the value of the latest pose keyframe at or before t, defaulting
// to center. For the expression, an active phoneme keyframe (t inside its
// transition window) wins over the latest expression keyframe whenever the
// phoneme keyframe is not older than it, ties favoring the phoneme track;
// otherwise the latest expression keyframe applies, defaulting to neutral.
func Resolve(tr *Tracks, t int64) domain.State {
	state := domain.DefaultState()

	if pose, ok := latestPose(tr.Pose, t); ok {
		state.Pose = pose.Pose
	}

	exprKf, hasExpr := latestExpression(tr.Expression, t)
	if hasExpr {
		state.Expression = exprKf.Expression
	}
	if ph, ok := latestPhoneme(tr.Phoneme, t); ok && ph.ActiveAt(t) {
		if !hasExpr || ph.TimeMs >= exprKf.TimeMs {
			state.Expression = ph.Expression
		}
	}
	return state
}

// Combine flattens the three tracks into the export timeline: one combined
// keyframe per distinct keyframe time, each holding the resolved state and
// the winning transition duration (phoneme over expression over pose).
func Combine(tr *Tracks) []domain.CombinedKeyframe {
	times := distinctTimes(tr)
	if len(times) == 0 {
		return nil
	}

	out := make([]domain.CombinedKeyframe, 0, len(times))
	for _, t := range times {
		state := Resolve(tr, t)
		out = append(out, domain.CombinedKeyframe{
			TimeMs:       t,
			Expression:   state.Expression,
			Pose:         state.Pose,
			TransitionMs: transitionAt(tr, t),
		})
	}
	return out
}

// TotalDurationMs returns the time covered by the combined timeline: the
// last keyframe's time plus its transition.
func TotalDurationMs(combined []domain.CombinedKeyframe) int64 {
	if len(combined) == 0 {
		return 0
	}
	last := combined[len(combined)-1]
	return last.TimeMs + last.TransitionMs
}

func distinctTimes(tr *Tracks) []int64 {
	seen := make(map[int64]struct{})
	var times []int64
	add := func(t int64) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			times = append(times, t)
		}
	}
	for _, kf := range tr.Pose {
		add(kf.TimeMs)
	}
	for _, kf := range tr.Expression {
		add(kf.TimeMs)
	}
	for _, kf := range tr.Phoneme {
		add(kf.TimeMs)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times
}

// transitionAt picks the transition duration for a combined keyframe at t:
// phoneme beats expression beats pose when several tracks share a timestamp.
func transitionAt(tr *Tracks, t int64) int64 {
	for _, kf := range tr.Phoneme {
		if kf.TimeMs == t {
			return kf.TransitionMs
		}
	}
	for _, kf := range tr.Expression {
		if kf.TimeMs == t {
			return kf.TransitionMs
		}
	}
	return poseTransitionMs
}

func latestPose(track []domain.PoseKeyframe, t int64) (domain.PoseKeyframe, bool) {
	for i := len(track) - 1; i >= 0; i-- {
		if track[i].TimeMs <= t {
			return track[i], true
		}
	}
	return domain.PoseKeyframe{}, false
}

func latestExpression(track []domain.ExpressionKeyframe, t int64) (domain.ExpressionKeyframe, bool) {
	for i := len(track) - 1; i >= 0; i-- {
		if track[i].TimeMs <= t {
			return track[i], true
		}
	}
	return domain.ExpressionKeyframe{}, false
}

func latestPhoneme(track []domain.PhonemeKeyframe, t int64) (domain.PhonemeKeyframe, bool) {
	for i := len(track) - 1; i >= 0; i-- {
		if track[i].TimeMs <= t {
			return track[i], true
		}
	}
	return domain.PhonemeKeyframe{}, false
}
