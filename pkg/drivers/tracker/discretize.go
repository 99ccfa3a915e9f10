// Package tracker adapts a live face-tracking stream into target state
// requests.
//
// A tracker emits continuous estimates (head angles, mouth aperture) at
// high frequency. The core only accepts discrete states, so this driver
// discretizes the signal first, with hysteresis: the threshold to enter
// a pose or expression is wider than the threshold to leave it, which
// keeps a head hovering near a boundary from flickering the rig.
package tracker

import (
	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Sample is one tracker measurement. Angles are degrees, aperture is a
// normalized mouth-open estimate in [0,1], smile likewise.
type Sample struct {
	YawDeg   float64 `json:"yaw_deg"`
	PitchDeg float64 `json:"pitch_deg"`
	Aperture float64 `json:"aperture"`
	Smile    float64 `json:"smile"`
}

// Thresholds hold the hysteresis bands for each signal. Enter must be
// further from rest than Exit.
type Thresholds struct {
	YawEnterDeg   float64
	YawExitDeg    float64
	PitchEnterDeg float64
	PitchExitDeg  float64
	ApertureEnter float64
	ApertureExit  float64
	SmileEnter    float64
	SmileExit     float64
}

// DefaultThresholds returns the bands tuned against the reference
// tracker.
func DefaultThresholds() Thresholds {
	return Thresholds{
		YawEnterDeg:   12,
		YawExitDeg:    8,
		PitchEnterDeg: 10,
		PitchExitDeg:  6,
		ApertureEnter: 0.40,
		ApertureExit:  0.25,
		SmileEnter:    0.60,
		SmileExit:     0.40,
	}
}

// Discretizer folds a stream of samples into a discrete rig state.
// Not safe for concurrent use; feed it from a single reader loop.
type Discretizer struct {
	th    Thresholds
	state domain.State
}

// NewDiscretizer starts at neutral center.
func NewDiscretizer(th Thresholds) *Discretizer {
	return &Discretizer{th: th, state: domain.DefaultState()}
}

// State returns the current discrete state.
func (d *Discretizer) State() domain.State {
	return d.state
}

// Update folds one sample in and reports whether the discrete state
// changed.
func (d *Discretizer) Update(s Sample) (domain.State, bool) {
	next := domain.State{
		Pose:       d.nextPose(s),
		Expression: d.nextExpression(s),
	}
	changed := next != d.state
	d.state = next
	return next, changed
}

// nextPose picks a pose from the head angles. Yaw dominates pitch when
// both exceed their bands, matching how the sequences were authored
// (there is no combined tilt+nod art).
func (d *Discretizer) nextPose(s Sample) domain.Pose {
	cur := d.state.Pose
	if pose, ok := band(s.YawDeg, d.th.YawEnterDeg, d.th.YawExitDeg,
		cur, domain.PoseTiltRightSmall, domain.PoseTiltLeftSmall); ok {
		return pose
	}
	if pose, ok := band(s.PitchDeg, d.th.PitchEnterDeg, d.th.PitchExitDeg,
		cur, domain.PoseNodUpSmall, domain.PoseNodDownSmall); ok {
		return pose
	}
	return domain.PoseCenter
}

// band applies hysteresis on a symmetric signal: positive values map to
// pos, negative to neg. ok is false once the signal has settled back
// inside the exit band.
func band(v, enter, exit float64, cur, pos, neg domain.Pose) (domain.Pose, bool) {
	holding := cur == pos || cur == neg
	limit := enter
	if holding {
		limit = exit
	}
	switch {
	case v >= limit:
		return pos, true
	case v <= -limit:
		return neg, true
	default:
		return domain.PoseCenter, false
	}
}

// nextExpression maps mouth aperture and smile onto an expression.
// Aperture wins over smile; an open mouth reads as speech regardless of
// the smile estimate.
func (d *Discretizer) nextExpression(s Sample) domain.Expression {
	cur := d.state.Expression

	apLimit := d.th.ApertureEnter
	if cur == domain.ExprSpeakingAh {
		apLimit = d.th.ApertureExit
	}
	if s.Aperture >= apLimit {
		return domain.ExprSpeakingAh
	}

	smLimit := d.th.SmileEnter
	if cur == domain.ExprHappySoft {
		smLimit = d.th.SmileExit
	}
	if s.Smile >= smLimit {
		return domain.ExprHappySoft
	}
	return domain.ExprNeutral
}
