package domain

import (
	"fmt"
	"strings"
)

// State is one point in the character's appearance space: an expression at a
// head pose. The route planner connects states through pre-rendered sequences.
type State struct {
	Expression Expression `json:"expression"`
	Pose       Pose       `json:"pose"`
}

// DefaultState is the resting appearance: neutral expression, centered head.
func DefaultState() State {
	return State{Expression: ExprNeutral, Pose: PoseCenter}
}

// NewState builds a state, validating both axes.
func NewState(expr Expression, pose Pose) (State, error) {
	if !expr.Valid() {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownExpression, expr)
	}
	if !pose.Valid() {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownPose, pose)
	}
	return State{Expression: expr, Pose: pose}, nil
}

// ParseState parses the "expression@pose" notation used by the CLI and logs.
// A missing pose defaults to center.
func ParseState(s string) (State, error) {
	expr, pose, found := strings.Cut(s, "@")
	if !found {
		return NewState(Expression(expr), PoseCenter)
	}
	return NewState(Expression(expr), Pose(pose))
}

// String renders the state in "expression@pose" form.
func (s State) String() string {
	return string(s.Expression) + "@" + string(s.Pose)
}

// IsNeutral reports whether the state is the neutral expression at any pose.
func (s State) IsNeutral() bool {
	return s.Expression == ExprNeutral
}
