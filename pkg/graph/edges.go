package graph

import "github.com/miriamsimone/video-generation-pipeline/pkg/domain"

// PoseScope says at which head poses an expression edge has rendered art.
type PoseScope int

const (
	// ScopeCenterOnly edges exist only at the center pose. Speech visemes
	// and the rarer expressions were never rendered at tilted poses.
	ScopeCenterOnly PoseScope = iota

	// ScopeAllPoses edges were rendered at every pose variant.
	ScopeAllPoses
)

// Edge declares one bidirectional pre-rendered expression sequence.
// Start and End are canonical: the stored sequence's t=0 frame shows Start
// and its t=1 frame shows End, whichever direction is played.
type Edge struct {
	Start domain.Expression
	End   domain.Expression
	Scope PoseScope
}

// At reports whether the edge has rendered art at the given pose.
func (e Edge) At(pose domain.Pose) bool {
	return e.Scope == ScopeAllPoses || pose.IsCenter()
}

// DefaultEdges returns the edge table matching the rendered asset inventory.
// happy_big is reachable only through happy_soft, and surprised_ah only
// through speaking_ah; neither has a direct edge to neutral.
func DefaultEdges() []Edge {
	return []Edge{
		{Start: domain.ExprNeutral, End: domain.ExprHappySoft, Scope: ScopeAllPoses},
		{Start: domain.ExprNeutral, End: domain.ExprConcerned, Scope: ScopeAllPoses},

		{Start: domain.ExprHappySoft, End: domain.ExprHappyBig, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingAh, End: domain.ExprSurprisedAh, Scope: ScopeCenterOnly},
		{Start: domain.ExprNeutral, End: domain.ExprBlink, Scope: ScopeCenterOnly},

		// Speech visemes: neutral to each, plus the full viseme mesh so
		// lip-sync never detours through neutral mid-word.
		{Start: domain.ExprNeutral, End: domain.ExprSpeakingAh, Scope: ScopeCenterOnly},
		{Start: domain.ExprNeutral, End: domain.ExprSpeakingEe, Scope: ScopeCenterOnly},
		{Start: domain.ExprNeutral, End: domain.ExprSpeakingUw, Scope: ScopeCenterOnly},
		{Start: domain.ExprNeutral, End: domain.ExprOhRound, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingAh, End: domain.ExprSpeakingEe, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingAh, End: domain.ExprSpeakingUw, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingAh, End: domain.ExprOhRound, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingEe, End: domain.ExprSpeakingUw, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingEe, End: domain.ExprOhRound, Scope: ScopeCenterOnly},
		{Start: domain.ExprSpeakingUw, End: domain.ExprOhRound, Scope: ScopeCenterOnly},
	}
}
