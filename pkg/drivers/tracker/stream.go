package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// TargetFunc receives each discretized state change. It is the driver's
// only reach into the core, typically Player.RequestState.
type TargetFunc func(ctx context.Context, target domain.State) error

// Stream consumes tracker samples over a websocket and forwards state
// changes to a TargetFunc.
type Stream struct {
	url     string
	dialer  *websocket.Dialer
	disc    *Discretizer
	forward TargetFunc
	log     *slog.Logger
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithThresholds overrides the hysteresis bands.
func WithThresholds(th Thresholds) StreamOption {
	return func(s *Stream) {
		s.disc = NewDiscretizer(th)
	}
}

// WithDialer replaces the websocket dialer.
func WithDialer(d *websocket.Dialer) StreamOption {
	return func(s *Stream) {
		s.dialer = d
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) StreamOption {
	return func(s *Stream) {
		s.log = log
	}
}

// NewStream creates a stream reading samples from url.
func NewStream(url string, forward TargetFunc, opts ...StreamOption) *Stream {
	s := &Stream{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		disc:    NewDiscretizer(DefaultThresholds()),
		forward: forward,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run connects and pumps samples until ctx is done or the connection
// drops. Reconnection policy belongs to the caller.
func (s *Stream) Run(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("tracker: dial %s: %w", s.url, err)
	}
	defer conn.Close()

	// Unblock ReadJSON when the context ends.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	s.log.Info("tracker stream connected", "url", s.url)
	for {
		var sample Sample
		if err := conn.ReadJSON(&sample); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("tracker: read sample: %w", err)
		}
		target, changed := s.disc.Update(sample)
		if !changed {
			continue
		}
		if err := s.forward(ctx, target); err != nil {
			// Unreachable targets degrade to a jump cut downstream;
			// the stream keeps running.
			s.log.Warn("target request failed", "target", target, "error", err)
		}
	}
}
