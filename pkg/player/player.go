package player

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/graph"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

const (
	// DefaultFPS is the sprite playback rate. The pre-rendered
	// sequences are authored against it.
	DefaultFPS = 24

	// DefaultCrossfade is how long a newly presented frame fades in
	// over its predecessor.
	DefaultCrossfade = 150 * time.Millisecond
)

// Player owns the playback state machine: it plans routes on request,
// fetches their sequences in the background and advances frames on
// each tick. All exported methods are safe for concurrent use; the
// internal state only mutates under the player's lock, so a stale
// fetch completing late can be detected and discarded by route id.
type Player struct {
	store   ports.SequenceStore
	sink    ports.FrameSink
	clock   ports.Clock
	planner *graph.Planner
	hooks   domain.LifecycleHooks
	log     *slog.Logger

	interval time.Duration
	fade     time.Duration
	bounds   image.Rectangle

	mu        sync.Mutex
	phase     Phase
	current   domain.State
	requested domain.State
	route     *activeRoute
	results   chan loadedSegment
	idleGen   uint64
	presenter *crossfader
}

// activeRoute is the route currently being fetched and played.
type activeRoute struct {
	id     uuid.UUID
	target domain.State
	cancel context.CancelFunc
	slots  []*segmentSlot
	idx    int
	frame  int
	nextAt time.Time
}

// segmentSlot tracks fetch progress for one segment of the route.
type segmentSlot struct {
	segment domain.Segment
	frames  []image.Image
	loaded  bool
	dropped bool
}

// Option configures a Player.
type Option func(*Player)

// WithFPS overrides the playback rate.
func WithFPS(fps int) Option {
	return func(p *Player) {
		p.interval = time.Second / time.Duration(fps)
	}
}

// WithCrossfade overrides the frame crossfade duration.
func WithCrossfade(d time.Duration) Option {
	return func(p *Player) {
		p.fade = d
	}
}

// WithClock injects the time source used by Run.
func WithClock(clock ports.Clock) Option {
	return func(p *Player) {
		p.clock = clock
	}
}

// WithPlanner overrides the route planner.
func WithPlanner(planner *graph.Planner) Option {
	return func(p *Player) {
		p.planner = planner
	}
}

// WithHooks attaches lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Player) {
		p.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Player) {
		p.log = log
	}
}

// WithCanvas sets the output canvas size frames are normalized to.
func WithCanvas(bounds image.Rectangle) Option {
	return func(p *Player) {
		p.bounds = bounds
	}
}

// New creates a player presenting to sink from store, starting at
// neutral center.
func New(store ports.SequenceStore, sink ports.FrameSink, opts ...Option) *Player {
	p := &Player{
		store:    store,
		sink:     sink,
		clock:    ports.SystemClock{},
		planner:  graph.NewPlanner(),
		log:      slog.Default(),
		interval: time.Second / DefaultFPS,
		fade:     DefaultCrossfade,
		bounds:   image.Rect(0, 0, 512, 512),
		phase:    PhaseIdle,
		current:  domain.DefaultState(),
		results:  make(chan loadedSegment, 32),
	}
	p.requested = p.current
	for _, opt := range opts {
		opt(p)
	}
	p.presenter = newCrossfader(p.bounds, p.fade)
	return p
}

// CurrentState returns the last settled state.
func (p *Player) CurrentState() domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// RequestedState returns the most recently requested target.
func (p *Player) RequestedState() domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requested
}

// Phase returns the playback phase.
func (p *Player) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// RequestState plans and begins a route to target.
//
// While a route is in flight the plan origin is the previously
// requested target rather than whatever frame happens to be on screen,
// so a preempting request continues forward instead of snapping back.
// A target with no rendered path jump-cuts: the state changes
// immediately, an idle frame is fetched, and domain.ErrRouteNotFound
// is returned so callers may log it.
func (p *Player) RequestState(ctx context.Context, target domain.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	origin := p.current
	if p.route != nil {
		if target == p.requested {
			return nil
		}
		origin = p.requested
	}

	route, err := p.planner.PlanRoute(origin, target)
	switch {
	case errors.Is(err, domain.ErrRouteNotFound):
		p.emitRouteNotFound(ctx, origin, target)
		p.jumpCut(ctx, target)
		return err
	case err != nil:
		return err
	}

	p.requested = target
	if route.Empty() {
		return nil
	}

	if p.route != nil {
		p.route.cancel()
		p.emitPreempt(ctx, origin, target)
		p.phase = PhasePreempted
	} else {
		p.phase = PhaseLoading
	}
	p.emitRoutePlanned(ctx, origin, target, len(route))

	fetchCtx, cancel := context.WithCancel(ctx)
	ar := &activeRoute{
		id:     uuid.New(),
		target: target,
		cancel: cancel,
		idx:    0,
	}
	for _, seg := range route {
		ar.slots = append(ar.slots, &segmentSlot{segment: seg})
	}
	p.route = ar

	go fetchRoute(fetchCtx, p.store, ar.id, route, p.results)
	return nil
}

// Run drives the tick loop until ctx is done.
func (p *Player) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Tick(p.clock.Now())
		}
	}
}

// Tick advances playback to now: it applies finished fetches, starts
// or continues the active segment, and re-renders the crossfade. Safe
// to call at any rate; frames still advance on the fixed interval.
func (p *Player) Tick(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.drainResults()

	switch p.phase {
	case PhaseLoading, PhasePreempted:
		p.tickLoading(now)
	case PhasePlaying:
		p.tickPlaying(now)
	}

	p.render(now)
}

// drainResults applies completed fetches for the active route and
// discards results from superseded routes.
func (p *Player) drainResults() {
	for {
		select {
		case res := <-p.results:
			if p.route == nil || res.routeID != p.route.id {
				continue // stale fetch, route was superseded
			}
			slot := p.route.slots[res.index]
			if res.err != nil {
				slot.dropped = true
				p.emitFetchFailure(slot.segment.PathID, res.err)
				p.log.Warn("sequence fetch failed, dropping segment",
					"path_id", slot.segment.PathID, "error", res.err)
				continue
			}
			slot.frames = res.frames
			slot.loaded = true
		default:
			return
		}
	}
}

// tickLoading waits for the segment at the route cursor, skipping
// dropped segments. A route whose every segment dropped degrades to a
// jump cut.
func (p *Player) tickLoading(now time.Time) {
	ar := p.route
	for ar.idx < len(ar.slots) && ar.slots[ar.idx].dropped {
		ar.idx++
	}
	if ar.idx >= len(ar.slots) {
		target := ar.target
		if p.anySegmentPlayed() {
			p.finishRoute()
			p.showIdle(context.Background(), target)
			return
		}
		p.emitRouteNotFound(context.Background(), p.current, target)
		p.jumpCut(context.Background(), target)
		return
	}
	slot := ar.slots[ar.idx]
	if !slot.loaded {
		return // keep showing the previous frame, never block
	}
	p.startSegment(slot, now)
}

// anySegmentPlayed reports whether the route cursor passed at least
// one playable segment.
func (p *Player) anySegmentPlayed() bool {
	for i := 0; i < p.route.idx && i < len(p.route.slots); i++ {
		if !p.route.slots[i].dropped {
			return true
		}
	}
	return false
}

// tickPlaying advances the active segment at the fixed frame rate.
func (p *Player) tickPlaying(now time.Time) {
	ar := p.route
	slot := ar.slots[ar.idx]
	for !now.Before(ar.nextAt) {
		next, done := nextFrameIndex(ar.frame, len(slot.frames), slot.segment.Direction)
		if done {
			p.emitSegmentEnd(slot.segment)
			ar.idx++
			ar.frame = 0
			p.phase = PhaseLoading
			p.tickLoading(now)
			return
		}
		ar.frame = next
		p.presentFrame(slot, now)
		ar.nextAt = ar.nextAt.Add(p.interval)
	}
}

// nextFrameIndex steps a frame cursor along the segment's direction.
func nextFrameIndex(cur, count int, dir domain.Direction) (next int, done bool) {
	if dir == domain.Backward {
		next = cur - 1
		return next, next < 0
	}
	next = cur + 1
	return next, next >= count
}

// startSegment begins playing a loaded segment. Reversed segments
// start from the last frame and walk toward t=0.
func (p *Player) startSegment(slot *segmentSlot, now time.Time) {
	ar := p.route
	if slot.segment.Direction == domain.Backward {
		ar.frame = len(slot.frames) - 1
	} else {
		ar.frame = 0
	}
	ar.nextAt = now.Add(p.interval)
	p.phase = PhasePlaying
	p.emitSegmentStart(slot.segment)
	p.presentFrame(slot, now)
}

// finishRoute settles the player on the route's target.
func (p *Player) finishRoute() {
	ar := p.route
	ar.cancel()
	p.route = nil
	p.current = ar.target
	p.requested = ar.target
	p.phase = PhaseIdle
}

// jumpCut abandons animation and settles on target immediately,
// fetching its idle frame in the background.
func (p *Player) jumpCut(ctx context.Context, target domain.State) {
	if p.route != nil {
		p.route.cancel()
		p.route = nil
	}
	p.current = target
	p.requested = target
	p.phase = PhaseIdle
	p.showIdle(ctx, target)
}

// showIdle fetches and presents the idle frame for state. The fetch is
// asynchronous and guarded by a generation counter so a late result
// for an abandoned state never overwrites the screen.
func (p *Player) showIdle(ctx context.Context, state domain.State) {
	p.idleGen++
	gen := p.idleGen
	lookup := domain.State{
		Expression: p.planner.IdleProxy(state.Expression),
		Pose:       state.Pose,
	}
	go func() {
		img, err := fetchIdleFrame(ctx, p.store, lookup)
		if err != nil {
			p.emitFetchFailure(lookup.String(), err)
			p.log.Warn("idle frame fetch failed", "state", lookup, "error", err)
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.idleGen != gen || p.phase != PhaseIdle {
			return // a newer request took over
		}
		now := p.clock.Now()
		p.presenter.Set(img, now)
		p.sink.Present(p.presenter.Render(now))
	}()
}

func (p *Player) presentFrame(slot *segmentSlot, now time.Time) {
	p.presenter.Set(slot.frames[p.route.frame], now)
	p.sink.Present(p.presenter.Render(now))
	p.emitFramePresent(slot.segment)
}

// render repaints the current composite so an in-progress crossfade
// keeps ramping between frame advances. While nothing is fading the
// previous frame simply stays visible; the screen is never blanked
// while a fetch is outstanding.
func (p *Player) render(now time.Time) {
	if p.presenter.fading(now) {
		p.sink.Present(p.presenter.Render(now))
	}
}

func (p *Player) emitRoutePlanned(ctx context.Context, from, to domain.State, segments int) {
	if p.hooks.OnRoutePlanned == nil {
		return
	}
	p.hooks.OnRoutePlanned(ctx, &domain.RouteEvent{
		EventBase: eventBase(domain.EventRoutePlanned),
		From:      from, To: to, Segments: segments,
	})
}

func (p *Player) emitRouteNotFound(ctx context.Context, from, to domain.State) {
	if p.hooks.OnRouteNotFound == nil {
		return
	}
	p.hooks.OnRouteNotFound(ctx, &domain.RouteEvent{
		EventBase: eventBase(domain.EventRouteNotFound),
		From:      from, To: to,
	})
}

func (p *Player) emitPreempt(ctx context.Context, from, to domain.State) {
	if p.hooks.OnPreempt == nil {
		return
	}
	p.hooks.OnPreempt(ctx, &domain.RouteEvent{
		EventBase: eventBase(domain.EventPreempt),
		From:      from, To: to,
	})
}

func (p *Player) emitSegmentStart(seg domain.Segment) {
	if p.hooks.OnSegmentStart == nil {
		return
	}
	p.hooks.OnSegmentStart(context.Background(), &domain.SegmentEvent{
		EventBase: eventBase(domain.EventSegmentStart),
		PathID:    seg.PathID, Direction: seg.Direction,
	})
}

func (p *Player) emitSegmentEnd(seg domain.Segment) {
	if p.hooks.OnSegmentEnd == nil {
		return
	}
	p.hooks.OnSegmentEnd(context.Background(), &domain.SegmentEvent{
		EventBase: eventBase(domain.EventSegmentEnd),
		PathID:    seg.PathID, Direction: seg.Direction,
	})
}

func (p *Player) emitFramePresent(seg domain.Segment) {
	if p.hooks.OnFramePresent == nil {
		return
	}
	p.hooks.OnFramePresent(context.Background(), &domain.SegmentEvent{
		EventBase: eventBase(domain.EventFramePresent),
		PathID:    seg.PathID, Direction: seg.Direction,
	})
}

func (p *Player) emitFetchFailure(pathID string, err error) {
	if p.hooks.OnFetchFailure == nil {
		return
	}
	p.hooks.OnFetchFailure(context.Background(), &domain.FetchEvent{
		EventBase: eventBase(domain.EventFetchFailure),
		PathID:    pathID, Err: err,
	})
}

func eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t}
}
