package facerig

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/graph"
	"github.com/miriamsimone/video-generation-pipeline/pkg/player"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
	"github.com/miriamsimone/video-generation-pipeline/pkg/timeline"
	"github.com/miriamsimone/video-generation-pipeline/pkg/viseme"
)

// Version is the library version, injected at release time.
var Version = "dev"

// DefaultResolveInterval is how often the engine re-resolves the
// timeline against the playback clock.
const DefaultResolveInterval = 100 * time.Millisecond

// Engine is the high-level entry point for the rig. It owns the
// keyframe tracks and the player, and keeps them in sync: whenever the
// resolved timeline state differs from the player's in-flight target,
// the engine requests the new state.
//
// All methods are safe for concurrent use; drivers may push keyframes
// while playback runs.
type Engine struct {
	planner *graph.Planner
	player  *player.Player
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	clock   ports.Clock

	resolveEvery time.Duration
	playerOpts   []player.Option

	mu     sync.Mutex
	tracks *timeline.Tracks
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPlanner overrides the route planner, e.g. for a reduced edge
// table matching a partial asset set.
func WithPlanner(planner *graph.Planner) Option {
	return func(e *Engine) {
		e.planner = planner
	}
}

// WithClock injects the time source for playback ticks.
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithResolveInterval overrides how often the timeline is re-resolved.
func WithResolveInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.resolveEvery = d
	}
}

// WithPlayerOptions forwards extra options to the underlying player.
func WithPlayerOptions(opts ...player.Option) Option {
	return func(e *Engine) {
		e.playerOpts = append(e.playerOpts, opts...)
	}
}

// New initializes an Engine reading sequences from store and
// presenting frames to sink.
func New(store ports.SequenceStore, sink ports.FrameSink, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("facerig: store is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("facerig: sink is required")
	}

	e := &Engine{
		planner:      graph.NewPlanner(),
		logger:       slog.Default(),
		clock:        ports.SystemClock{},
		resolveEvery: DefaultResolveInterval,
		tracks:       timeline.NewTracks(),
	}
	for _, opt := range opts {
		opt(e)
	}

	playerOpts := append([]player.Option{
		player.WithPlanner(e.planner),
		player.WithClock(e.clock),
		player.WithHooks(e.hooks),
		player.WithLogger(e.logger),
	}, e.playerOpts...)
	e.player = player.New(store, sink, playerOpts...)
	return e, nil
}

// Player exposes the underlying player, mainly for drivers that issue
// target state requests directly.
func (e *Engine) Player() *player.Player {
	return e.player
}

// RequestState asks the rig to route to target.
func (e *Engine) RequestState(ctx context.Context, target domain.State) error {
	return e.player.RequestState(ctx, target)
}

// CurrentState returns the last settled rig state.
func (e *Engine) CurrentState() domain.State {
	return e.player.CurrentState()
}

// AddPoseKeyframe appends a pose keyframe to the timeline.
func (e *Engine) AddPoseKeyframe(kf domain.PoseKeyframe) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracks.AddPose(kf)
}

// AddExpressionKeyframe appends an expression keyframe to the timeline.
func (e *Engine) AddExpressionKeyframe(kf domain.ExpressionKeyframe) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracks.AddExpression(kf)
}

// RemovePoseKeyframe deletes the pose keyframe at exactly timeMs.
func (e *Engine) RemovePoseKeyframe(timeMs int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracks.RemovePose(timeMs)
}

// RemoveExpressionKeyframe deletes the expression keyframe at exactly
// timeMs.
func (e *Engine) RemoveExpressionKeyframe(timeMs int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracks.RemoveExpression(timeMs)
}

// IngestExpressionKeyframes validates and applies a planner payload to
// the expression track.
func (e *Engine) IngestExpressionKeyframes(raw []map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return timeline.IngestExpressionKeyframes(e.tracks, raw)
}

// IngestPoseKeyframes validates and applies an external pose keyframe
// payload.
func (e *Engine) IngestPoseKeyframes(raw []map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return timeline.IngestPoseKeyframes(e.tracks, raw)
}

// SetPhonemes rebuilds the phoneme track from aligner output. The
// previous phoneme track is replaced wholesale; manual and planner
// keyframes on the other tracks are untouched.
func (e *Engine) SetPhonemes(phonemes []viseme.Phoneme) error {
	keyframes, err := viseme.NewBuilder().Build(phonemes)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracks.ClearPhoneme()
	for _, kf := range keyframes {
		if err := e.tracks.AddPhoneme(kf); err != nil {
			return err
		}
	}
	return nil
}

// Tracks returns a snapshot copy of the timeline tracks.
func (e *Engine) Tracks() *timeline.Tracks {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracks.Clone()
}

// ResolveAt returns the effective state of the timeline at playback
// time tau.
func (e *Engine) ResolveAt(tauMs int64) domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return timeline.Resolve(e.tracks, tauMs)
}

// Combine flattens the three tracks into the export keyframe list.
func (e *Engine) Combine() []domain.CombinedKeyframe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return timeline.Combine(e.tracks)
}

// ExportTimeline renders the combined keyframe list as JSON, the
// interchange format handed to offline video renderers.
func (e *Engine) ExportTimeline() ([]byte, error) {
	combined := e.Combine()
	data, err := json.MarshalIndent(combined, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("facerig: export timeline: %w", err)
	}
	return data, nil
}

// resolveTick resolves the timeline at tau and retargets the player if
// the effective state moved. The playback position is passed in
// explicitly; the tick never reads a shared cursor.
func (e *Engine) resolveTick(ctx context.Context, tauMs int64) error {
	target := e.ResolveAt(tauMs)
	if target == e.player.RequestedState() {
		return nil
	}
	return e.RequestState(ctx, target)
}

// Run drives both periodic loops until ctx is done: the player's frame
// tick and the timeline resolution tick. position reports the current
// playback time; pass nil to disable timeline-driven retargeting and
// control the rig through RequestState alone.
func (e *Engine) Run(ctx context.Context, position func() int64) error {
	if position == nil {
		return e.player.Run(ctx)
	}

	done := make(chan error, 1)
	go func() {
		done <- e.player.Run(ctx)
	}()

	ticker := time.NewTicker(e.resolveEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return <-done
		case err := <-done:
			return err
		case <-ticker.C:
			if err := e.resolveTick(ctx, position()); err != nil {
				// Unreachable states degrade to a jump cut; keep looping.
				e.logger.Warn("resolve tick", "error", err)
			}
		}
	}
}
