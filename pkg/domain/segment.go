package domain

import "strings"

// Direction says which way a sequence is played.
type Direction string

const (
	// Forward plays frames in ascending t order (start state to end state).
	Forward Direction = "forward"

	// Backward plays frames in descending t order (end state to start state).
	Backward Direction = "backward"
)

// Segment is one planned, directed traversal of a sequence.
type Segment struct {
	PathID    string    `json:"path_id"`
	Direction Direction `json:"direction"`
	From      State     `json:"from"`
	To        State     `json:"to"`
}

// Route is an ordered list of segments connecting two states. An empty route
// means either "already at target" or "no plan possible, jump-cut instead".
type Route []Segment

// Empty reports whether the route has no segments.
func (r Route) Empty() bool {
	return len(r) == 0
}

// Final returns the state reached after playing every segment.
// ok is false for an empty route.
func (r Route) Final() (State, bool) {
	if len(r) == 0 {
		return State{}, false
	}
	return r[len(r)-1].To, true
}

// String renders the route as "a@p -> b@p -> c@p" for logs and the CLI.
func (r Route) String() string {
	if len(r) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	b.WriteString(r[0].From.String())
	for _, seg := range r {
		b.WriteString(" -> ")
		b.WriteString(seg.To.String())
	}
	return b.String()
}
