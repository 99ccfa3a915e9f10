package timeline

import (
	"fmt"
	"sort"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Tracks holds the three sparse keyframe tracks. Drivers append through the
// Add methods; the timeline editor may also update or delete. Each track is
// kept sorted by time at all times.
type Tracks struct {
	Pose       []domain.PoseKeyframe
	Expression []domain.ExpressionKeyframe
	Phoneme    []domain.PhonemeKeyframe
}

// NewTracks returns an empty track set.
func NewTracks() *Tracks {
	return &Tracks{}
}

// AddPose inserts a pose keyframe, replacing any existing keyframe at the
// same time.
func (tr *Tracks) AddPose(kf domain.PoseKeyframe) error {
	if kf.TimeMs < 0 {
		return fmt.Errorf("%w: negative keyframe time %d", domain.ErrMalformedTrack, kf.TimeMs)
	}
	if !kf.Pose.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPose, kf.Pose)
	}
	tr.RemovePose(kf.TimeMs)
	tr.Pose = append(tr.Pose, kf)
	sort.SliceStable(tr.Pose, func(i, j int) bool { return tr.Pose[i].TimeMs < tr.Pose[j].TimeMs })
	return nil
}

// AddExpression inserts an expression keyframe, replacing any existing
// keyframe at the same time.
func (tr *Tracks) AddExpression(kf domain.ExpressionKeyframe) error {
	if err := validateExpressionKeyframe(kf.TimeMs, kf.Expression, kf.TransitionMs); err != nil {
		return err
	}
	tr.RemoveExpression(kf.TimeMs)
	tr.Expression = append(tr.Expression, kf)
	sort.SliceStable(tr.Expression, func(i, j int) bool { return tr.Expression[i].TimeMs < tr.Expression[j].TimeMs })
	return nil
}

// AddPhoneme inserts a phoneme keyframe, replacing any existing keyframe at
// the same time.
func (tr *Tracks) AddPhoneme(kf domain.PhonemeKeyframe) error {
	if err := validateExpressionKeyframe(kf.TimeMs, kf.Expression, kf.TransitionMs); err != nil {
		return err
	}
	tr.RemovePhoneme(kf.TimeMs)
	tr.Phoneme = append(tr.Phoneme, kf)
	sort.SliceStable(tr.Phoneme, func(i, j int) bool { return tr.Phoneme[i].TimeMs < tr.Phoneme[j].TimeMs })
	return nil
}

// RemovePose deletes the pose keyframe at exactly timeMs, if any.
func (tr *Tracks) RemovePose(timeMs int64) bool {
	for i, kf := range tr.Pose {
		if kf.TimeMs == timeMs {
			tr.Pose = append(tr.Pose[:i], tr.Pose[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveExpression deletes the expression keyframe at exactly timeMs, if any.
func (tr *Tracks) RemoveExpression(timeMs int64) bool {
	for i, kf := range tr.Expression {
		if kf.TimeMs == timeMs {
			tr.Expression = append(tr.Expression[:i], tr.Expression[i+1:]...)
			return true
		}
	}
	return false
}

// RemovePhoneme deletes the phoneme keyframe at exactly timeMs, if any.
func (tr *Tracks) RemovePhoneme(timeMs int64) bool {
	for i, kf := range tr.Phoneme {
		if kf.TimeMs == timeMs {
			tr.Phoneme = append(tr.Phoneme[:i], tr.Phoneme[i+1:]...)
			return true
		}
	}
	return false
}

// ClearPhoneme drops the whole phoneme track, e.g. before re-running the
// viseme builder on a new alignment.
func (tr *Tracks) ClearPhoneme() {
	tr.Phoneme = nil
}

// Clone returns a deep copy, isolating the caller from later edits.
func (tr *Tracks) Clone() *Tracks {
	out := &Tracks{
		Pose:       make([]domain.PoseKeyframe, len(tr.Pose)),
		Expression: make([]domain.ExpressionKeyframe, len(tr.Expression)),
		Phoneme:    make([]domain.PhonemeKeyframe, len(tr.Phoneme)),
	}
	copy(out.Pose, tr.Pose)
	copy(out.Expression, tr.Expression)
	copy(out.Phoneme, tr.Phoneme)
	return out
}

func validateExpressionKeyframe(timeMs int64, expr domain.Expression, transitionMs int64) error {
	if timeMs < 0 {
		return fmt.Errorf("%w: negative keyframe time %d", domain.ErrMalformedTrack, timeMs)
	}
	if !expr.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownExpression, expr)
	}
	if transitionMs <= 0 {
		return fmt.Errorf("%w: non-positive transition %dms", domain.ErrMalformedTrack, transitionMs)
	}
	return nil
}
