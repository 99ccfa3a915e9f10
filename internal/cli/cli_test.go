package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

func TestRunRoute_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunRoute(&buf, "neutral", "happy_big", false))

	out := buf.String()
	assert.Contains(t, out, "neutral_to_happy_soft__center")
	assert.Contains(t, out, "happy_soft_to_happy_big__center")
}

func TestRunRoute_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunRoute(&buf, "happy_soft@center", "neutral@center", true))

	var route []domain.Segment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &route))
	require.Len(t, route, 1)
	assert.Equal(t, domain.Backward, route[0].Direction)
}

func TestRunRoute_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RunRoute(&buf, "not_an_expression", "neutral", false))
	assert.ErrorIs(t, RunRoute(&buf, "blink@tilt_left_small", "blink@tilt_right_small", false),
		domain.ErrRouteNotFound)
}

func TestRunVisemes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonemes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"start_ms": 0, "end_ms": 80, "label": "K"},
		{"start_ms": 80, "end_ms": 220, "label": "AE1"}
	]`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunVisemes(&buf, path))

	var keyframes []domain.PhonemeKeyframe
	require.NoError(t, json.Unmarshal(buf.Bytes(), &keyframes))
	require.Len(t, keyframes, 2)
	assert.Equal(t, domain.ExprSpeakingEe, keyframes[0].Expression)
	assert.Equal(t, int64(0), keyframes[0].TimeMs, "conjoined keyframe lands on the consonant start")
}

func TestRunCombine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"expression": [
			{"time_ms": 0, "target_expr": "happy_soft", "transition_duration_ms": 500}
		],
		"pose": [
			{"time_ms": 1000, "target_pose": "tilt_left_small"}
		]
	}`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunCombine(&buf, path))

	var combined []domain.CombinedKeyframe
	require.NoError(t, json.Unmarshal(buf.Bytes(), &combined))
	require.Len(t, combined, 2)
	assert.Equal(t, domain.PoseTiltLeftSmall, combined[1].Pose)
	assert.Equal(t, domain.ExprHappySoft, combined[1].Expression)
}

func TestRunCombine_RejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"expression": [
			{"time_ms": 0, "target_expr": "happy_soft", "transition_duration_ms": 500, "oops": true}
		]
	}`), 0o644))

	var buf bytes.Buffer
	assert.ErrorIs(t, RunCombine(&buf, path), domain.ErrMalformedTrack)
}

func TestLoadServeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9000"
store:
  dir: /srv/sequences
  redis:
    addr: localhost:6379
    ttl: 1h
`), 0o644))

	cfg, err := LoadServeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "/srv/sequences", cfg.Store.Dir)
	require.NotNil(t, cfg.Store.Redis)
	assert.Equal(t, Duration(time.Hour), cfg.Store.Redis.TTL)
	assert.Equal(t, ":2112", cfg.MetricsListen, "defaults survive partial configs")
}

func TestLoadServeConfig_Defaults(t *testing.T) {
	cfg, err := LoadServeConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServeConfig(), cfg)
}

func TestBuildStore_MissingDir(t *testing.T) {
	_, err := BuildStore(StoreConfig{Dir: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}
