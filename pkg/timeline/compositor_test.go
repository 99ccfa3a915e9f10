package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

func testTracks(t *testing.T) *Tracks {
	t.Helper()
	tr := NewTracks()
	require.NoError(t, tr.AddPose(domain.PoseKeyframe{TimeMs: 1000, Pose: domain.PoseTiltLeftSmall}))
	require.NoError(t, tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 500, Expression: domain.ExprHappySoft, TransitionMs: 500}))
	require.NoError(t, tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 3000, Expression: domain.ExprConcerned, TransitionMs: 500}))
	require.NoError(t, tr.AddPhoneme(domain.PhonemeKeyframe{TimeMs: 1200, Expression: domain.ExprSpeakingAh, TransitionMs: 500, Phoneme: "AA1"}))
	return tr
}

func TestResolveDefaults(t *testing.T) {
	state := Resolve(NewTracks(), 0)
	assert.Equal(t, domain.DefaultState(), state)
}

func TestResolvePoseLatestWins(t *testing.T) {
	tr := testTracks(t)

	assert.Equal(t, domain.PoseCenter, Resolve(tr, 999).Pose)
	assert.Equal(t, domain.PoseTiltLeftSmall, Resolve(tr, 1000).Pose)
	assert.Equal(t, domain.PoseTiltLeftSmall, Resolve(tr, 5000).Pose)
}

func TestResolvePhonemeWindow(t *testing.T) {
	tr := testTracks(t)

	// Before the phoneme keyframe: expression track value.
	assert.Equal(t, domain.ExprHappySoft, Resolve(tr, 1100).Expression)

	// Inside the phoneme window [1200, 1700): phoneme wins.
	assert.Equal(t, domain.ExprSpeakingAh, Resolve(tr, 1200).Expression)
	assert.Equal(t, domain.ExprSpeakingAh, Resolve(tr, 1699).Expression)

	// Window expired: back to the expression track.
	assert.Equal(t, domain.ExprHappySoft, Resolve(tr, 1700).Expression)

	// A newer expression keyframe beats a stale phoneme keyframe.
	assert.Equal(t, domain.ExprConcerned, Resolve(tr, 3000).Expression)
}

func TestResolvePhonemeTieFavorsPhoneme(t *testing.T) {
	tr := NewTracks()
	require.NoError(t, tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 1000, Expression: domain.ExprHappySoft, TransitionMs: 500}))
	require.NoError(t, tr.AddPhoneme(domain.PhonemeKeyframe{TimeMs: 1000, Expression: domain.ExprSpeakingEe, TransitionMs: 500}))

	assert.Equal(t, domain.ExprSpeakingEe, Resolve(tr, 1100).Expression)
}

func TestCombineOrderedAndDeduplicated(t *testing.T) {
	tr := testTracks(t)
	combined := Combine(tr)
	require.Len(t, combined, 4)

	var prev int64 = -1
	for _, kf := range combined {
		assert.Greater(t, kf.TimeMs, prev)
		prev = kf.TimeMs
	}

	assert.Equal(t, domain.ExprHappySoft, combined[0].Expression)
	assert.Equal(t, domain.PoseCenter, combined[0].Pose)
	assert.Equal(t, domain.PoseTiltLeftSmall, combined[1].Pose)
	assert.Equal(t, domain.ExprSpeakingAh, combined[2].Expression)
	assert.Equal(t, domain.ExprConcerned, combined[3].Expression)
}

func TestCombineTransitionPrecedence(t *testing.T) {
	tr := NewTracks()
	require.NoError(t, tr.AddPose(domain.PoseKeyframe{TimeMs: 100, Pose: domain.PoseNodDownSmall}))
	require.NoError(t, tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 100, Expression: domain.ExprHappySoft, TransitionMs: 400}))
	require.NoError(t, tr.AddPhoneme(domain.PhonemeKeyframe{TimeMs: 100, Expression: domain.ExprSpeakingUw, TransitionMs: 250}))

	combined := Combine(tr)
	require.Len(t, combined, 1)
	assert.Equal(t, int64(250), combined[0].TransitionMs, "phoneme transition wins the shared timestamp")

	tr.RemovePhoneme(100)
	combined = Combine(tr)
	require.Len(t, combined, 1)
	assert.Equal(t, int64(400), combined[0].TransitionMs, "expression transition wins over pose")
}

func TestCombineIdempotent(t *testing.T) {
	tr := testTracks(t)
	first := Combine(tr)
	second := Combine(tr)
	assert.Equal(t, first, second)
}

func TestTotalDurationMs(t *testing.T) {
	tr := testTracks(t)
	combined := Combine(tr)
	assert.Equal(t, int64(3500), TotalDurationMs(combined))
	assert.Zero(t, TotalDurationMs(nil))
}

func TestTracksEditing(t *testing.T) {
	tr := NewTracks()
	require.NoError(t, tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 100, Expression: domain.ExprHappySoft, TransitionMs: 500}))

	// Replacing at the same time keeps a single keyframe.
	require.NoError(t, tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 100, Expression: domain.ExprConcerned, TransitionMs: 500}))
	require.Len(t, tr.Expression, 1)
	assert.Equal(t, domain.ExprConcerned, tr.Expression[0].Expression)

	assert.True(t, tr.RemoveExpression(100))
	assert.False(t, tr.RemoveExpression(100))
	assert.Empty(t, tr.Expression)
}

func TestTracksRejectMalformed(t *testing.T) {
	tr := NewTracks()

	err := tr.AddExpression(domain.ExpressionKeyframe{TimeMs: -1, Expression: domain.ExprHappySoft, TransitionMs: 500})
	assert.ErrorIs(t, err, domain.ErrMalformedTrack)

	err = tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 0, Expression: "grimace", TransitionMs: 500})
	assert.ErrorIs(t, err, domain.ErrUnknownExpression)

	err = tr.AddExpression(domain.ExpressionKeyframe{TimeMs: 0, Expression: domain.ExprHappySoft, TransitionMs: 0})
	assert.ErrorIs(t, err, domain.ErrMalformedTrack)

	err = tr.AddPose(domain.PoseKeyframe{TimeMs: 0, Pose: "sideways"})
	assert.ErrorIs(t, err, domain.ErrUnknownPose)
}

func TestIngestExpressionKeyframes(t *testing.T) {
	tr := NewTracks()
	err := IngestExpressionKeyframes(tr, []map[string]any{
		{"time_ms": 1200, "target_expr": "happy_soft", "transition_duration_ms": 500, "reason": "positive greeting"},
		{"time_ms": 2500, "target_expr": "concerned", "transition_duration_ms": 500},
	})
	require.NoError(t, err)
	require.Len(t, tr.Expression, 2)
	assert.Equal(t, domain.ExprHappySoft, tr.Expression[0].Expression)
}

func TestIngestRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  []map[string]any
	}{
		{
			name: "unknown field",
			raw:  []map[string]any{{"time_ms": 0, "target_expr": "happy_soft", "transition_duration_ms": 500, "surprise_me": true}},
		},
		{
			name: "unknown expression",
			raw:  []map[string]any{{"time_ms": 0, "target_expr": "grimace", "transition_duration_ms": 500}},
		},
		{
			name: "out of order",
			raw: []map[string]any{
				{"time_ms": 900, "target_expr": "happy_soft", "transition_duration_ms": 500},
				{"time_ms": 100, "target_expr": "concerned", "transition_duration_ms": 500},
			},
		},
		{
			name: "missing transition",
			raw:  []map[string]any{{"time_ms": 0, "target_expr": "happy_soft"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracks()
			err := IngestExpressionKeyframes(tr, tt.raw)
			assert.Error(t, err)
			assert.Empty(t, tr.Expression, "no partial application")
		})
	}
}

func TestIngestPoseKeyframes(t *testing.T) {
	tr := NewTracks()
	err := IngestPoseKeyframes(tr, []map[string]any{
		{"time_ms": 0, "target_pose": "tilt_left_small"},
		{"time_ms": 800, "target_pose": "center"},
	})
	require.NoError(t, err)
	require.Len(t, tr.Pose, 2)

	err = IngestPoseKeyframes(tr, []map[string]any{{"time_ms": 0, "target_pose": "diagonal"}})
	assert.ErrorIs(t, err, domain.ErrUnknownPose)
}
