package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

func state(expr domain.Expression, pose domain.Pose) domain.State {
	return domain.State{Expression: expr, Pose: pose}
}

func TestPlanRouteSameStateIsEmpty(t *testing.T) {
	p := NewPlanner()
	for _, expr := range domain.Expressions() {
		for _, pose := range domain.Poses() {
			s := state(expr, pose)
			route, err := p.PlanRoute(s, s)
			require.NoError(t, err, "state %s", s)
			assert.Empty(t, route, "state %s", s)
		}
	}
}

func TestPlanRouteDirectEdge(t *testing.T) {
	p := NewPlanner()

	route, err := p.PlanRoute(domain.DefaultState(), state(domain.ExprHappySoft, domain.PoseCenter))
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, "neutral_to_happy_soft__center", route[0].PathID)
	assert.Equal(t, domain.Forward, route[0].Direction)

	// The same sequence is reused in reverse on the way back.
	back, err := p.PlanRoute(state(domain.ExprHappySoft, domain.PoseCenter), domain.DefaultState())
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "neutral_to_happy_soft__center", back[0].PathID)
	assert.Equal(t, domain.Backward, back[0].Direction)
}

func TestPlanRouteThroughIntermediate(t *testing.T) {
	p := NewPlanner()

	route, err := p.PlanRoute(state(domain.ExprSurprisedAh, domain.PoseCenter), domain.DefaultState())
	require.NoError(t, err)
	require.Len(t, route, 2)
	assert.Equal(t, "speaking_ah_to_surprised_ah__center", route[0].PathID)
	assert.Equal(t, domain.Backward, route[0].Direction)
	assert.Equal(t, domain.ExprSpeakingAh, route[0].To.Expression)
	assert.Equal(t, "neutral_to_speaking_ah__center", route[1].PathID)
	assert.Equal(t, domain.Backward, route[1].Direction)

	// Same shape for the other constrained expression.
	route, err = p.PlanRoute(domain.DefaultState(), state(domain.ExprHappyBig, domain.PoseCenter))
	require.NoError(t, err)
	require.Len(t, route, 2)
	assert.Equal(t, "neutral_to_happy_soft__center", route[0].PathID)
	assert.Equal(t, "happy_soft_to_happy_big__center", route[1].PathID)
}

func TestPlanRoutePoseChange(t *testing.T) {
	p := NewPlanner()

	route, err := p.PlanRoute(
		state(domain.ExprHappySoft, domain.PoseTiltLeftSmall),
		state(domain.ExprConcerned, domain.PoseTiltRightSmall),
	)
	require.NoError(t, err)
	require.Len(t, route, 4)

	// Neutralize at tilt_left_small.
	assert.Equal(t, "neutral_to_happy_soft__tilt_left_small", route[0].PathID)
	assert.Equal(t, domain.Backward, route[0].Direction)

	// Pose hop through center while neutral.
	assert.Equal(t, "neutral_center_to_neutral_tilt_left_small", route[1].PathID)
	assert.Equal(t, domain.Backward, route[1].Direction)
	assert.Equal(t, "neutral_center_to_neutral_tilt_right_small", route[2].PathID)
	assert.Equal(t, domain.Forward, route[2].Direction)

	// Re-express at tilt_right_small.
	assert.Equal(t, "neutral_to_concerned__tilt_right_small", route[3].PathID)
	assert.Equal(t, domain.Forward, route[3].Direction)

	final, ok := route.Final()
	require.True(t, ok)
	assert.Equal(t, state(domain.ExprConcerned, domain.PoseTiltRightSmall), final)
}

func TestPlanRoutePoseChangeFromCenter(t *testing.T) {
	p := NewPlanner()

	route, err := p.PlanRoute(domain.DefaultState(), state(domain.ExprNeutral, domain.PoseNodUpSmall))
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, "neutral_center_to_neutral_nod_up_small", route[0].PathID)
	assert.Equal(t, domain.Forward, route[0].Direction)
}

func TestPlanRouteVisemeMeshSkipsNeutral(t *testing.T) {
	p := NewPlanner()

	route, err := p.PlanRoute(
		state(domain.ExprSpeakingAh, domain.PoseCenter),
		state(domain.ExprSpeakingEe, domain.PoseCenter),
	)
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, "speaking_ah_to_speaking_ee__center", route[0].PathID)
}

func TestPlanRouteNotFound(t *testing.T) {
	p := NewPlanner()

	// blink was only rendered at center; no path exists at a tilt.
	route, err := p.PlanRoute(
		state(domain.ExprNeutral, domain.PoseTiltLeftSmall),
		state(domain.ExprBlink, domain.PoseTiltLeftSmall),
	)
	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
	assert.Empty(t, route)
}

func TestPlanRouteRejectsUnknownStates(t *testing.T) {
	p := NewPlanner()

	_, err := p.PlanRoute(domain.State{Expression: "grimace", Pose: domain.PoseCenter}, domain.DefaultState())
	assert.ErrorIs(t, err, domain.ErrUnknownExpression)

	_, err = p.PlanRoute(domain.DefaultState(), domain.State{Expression: domain.ExprNeutral, Pose: "sideways"})
	assert.ErrorIs(t, err, domain.ErrUnknownPose)
}

func TestPlanRouteDeterministic(t *testing.T) {
	p := NewPlanner()
	from := state(domain.ExprSurprisedAh, domain.PoseCenter)
	to := state(domain.ExprHappyBig, domain.PoseCenter)

	first, err := p.PlanRoute(from, to)
	require.NoError(t, err)
	for n := 0; n < 10; n++ {
		again, err := p.PlanRoute(from, to)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPathIDsCoverInventory(t *testing.T) {
	ids := NewPlanner().PathIDs()
	assert.Contains(t, ids, "neutral_to_happy_soft__center")
	assert.Contains(t, ids, "neutral_to_happy_soft__nod_down_small")
	assert.Contains(t, ids, "speaking_ah_to_surprised_ah__center")
	assert.Contains(t, ids, "neutral_center_to_neutral_tilt_right_small")
	// Center-only edges have no tilted variants.
	assert.NotContains(t, ids, "neutral_to_blink__tilt_left_small")
}
