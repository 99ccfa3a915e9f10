package domain

// PoseKeyframe requests a head pose starting at a point in time.
type PoseKeyframe struct {
	TimeMs int64 `json:"time_ms"`
	Pose   Pose  `json:"target_pose"`
}

// ExpressionKeyframe requests a facial expression starting at a point in
// time, transitioning over TransitionMs.
type ExpressionKeyframe struct {
	TimeMs       int64      `json:"time_ms"`
	Expression   Expression `json:"target_expr"`
	TransitionMs int64      `json:"transition_duration_ms"`
}

// PhonemeKeyframe is an expression keyframe produced by the viseme builder.
// It carries the source phoneme label for debugging and remains "active"
// only while the current time is inside its transition window.
type PhonemeKeyframe struct {
	TimeMs       int64      `json:"time_ms"`
	Expression   Expression `json:"target_expr"`
	TransitionMs int64      `json:"transition_duration_ms"`
	Phoneme      string     `json:"phoneme,omitempty"`
}

// CombinedKeyframe is one entry of the resolved export timeline: the
// effective expression and pose at a distinct keyframe time, with the
// winning track's transition duration. The JSON shape is the interchange
// format handed to offline video-rendering collaborators.
type CombinedKeyframe struct {
	TimeMs       int64      `json:"time_ms"`
	Expression   Expression `json:"target_expr"`
	Pose         Pose       `json:"target_pose"`
	TransitionMs int64      `json:"transition_duration_ms"`
}

// ActiveAt reports whether the phoneme keyframe still overrides the
// expression track at time t: phoneme keyframes win only inside their
// transition window.
func (k PhonemeKeyframe) ActiveAt(t int64) bool {
	return k.TimeMs <= t && t < k.TimeMs+k.TransitionMs
}
