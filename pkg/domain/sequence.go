package domain

import (
	"fmt"
	"strings"
)

// Frame is a single pre-rendered image in a sequence, positioned at a
// normalized time t in [0,1]. The frame at t=0 depicts the sequence's
// declared start state and the frame at t=1 its end state, regardless of
// which direction the sequence is later played in.
type Frame struct {
	T    float64 `json:"t"`
	File string  `json:"file"`
}

// Sequence is a bidirectional pre-rendered animation between exactly two
// expressions at one fixed pose, or between two poses while the expression
// is held at neutral. Immutable once fetched.
//
// The JSON shape matches the store manifest exactly:
//
//	{ "path_id": ..., "expr_start": ..., "expr_end": ..., "pose": ..., "frames": [{"t":0,"file":"000.png"}, ...] }
type Sequence struct {
	PathID    string  `json:"path_id"`
	ExprStart string  `json:"expr_start"`
	ExprEnd   string  `json:"expr_end"`
	Pose      string  `json:"pose"`
	Frames    []Frame `json:"frames"`
}

// Validate checks the manifest frame contract: at least two frames, sorted
// ascending by t, with t=0 and t=1 both present.
func (s *Sequence) Validate() error {
	if len(s.Frames) < 2 {
		return fmt.Errorf("%w: %q has %d frames", ErrMalformedSequence, s.PathID, len(s.Frames))
	}
	for i := 1; i < len(s.Frames); i++ {
		if s.Frames[i].T <= s.Frames[i-1].T {
			return fmt.Errorf("%w: %q frames not sorted at index %d", ErrMalformedSequence, s.PathID, i)
		}
	}
	if s.Frames[0].T != 0 {
		return fmt.Errorf("%w: %q missing t=0 frame", ErrMalformedSequence, s.PathID)
	}
	if s.Frames[len(s.Frames)-1].T != 1 {
		return fmt.Errorf("%w: %q missing t=1 frame", ErrMalformedSequence, s.PathID)
	}
	return nil
}

// First returns the frame at t=0.
func (s *Sequence) First() Frame {
	return s.Frames[0]
}

// Last returns the frame at t=1.
func (s *Sequence) Last() Frame {
	return s.Frames[len(s.Frames)-1]
}

// ExpressionPathID builds the store path id for an expression sequence at a
// fixed pose, e.g. "neutral_to_happy_soft__center".
func ExpressionPathID(start, end Expression, pose Pose) string {
	return fmt.Sprintf("%s_to_%s__%s", start, end, pose)
}

// PosePathID builds the store path id for a pose sequence played at neutral
// expression, e.g. "neutral_center_to_neutral_tilt_left_small".
func PosePathID(from, to Pose) string {
	return fmt.Sprintf("neutral_%s_to_neutral_%s", from, to)
}

// ParsePathID splits an expression path id of the form
// "<start>_to_<end>__<pose>" back into its components.
func ParsePathID(pathID string) (start, end, pose string, err error) {
	base, pose, found := cutLast(pathID, "__")
	if !found {
		return "", "", "", fmt.Errorf("%w: invalid path id %q", ErrMalformedSequence, pathID)
	}
	parts := strings.SplitN(base, "_to_", 2)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("%w: invalid path id %q", ErrMalformedSequence, pathID)
	}
	return parts[0], parts[1], pose, nil
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
