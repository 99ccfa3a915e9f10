package player

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Frame payloads are PNG in every known store.
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

// fetchConcurrency bounds parallel segment downloads per route.
const fetchConcurrency = 2

// loadedSegment is the result of fetching and decoding one segment's
// sequence. Err marks the segment as dropped.
type loadedSegment struct {
	routeID uuid.UUID
	index   int
	frames  []image.Image
	err     error
}

// fetchRoute downloads every segment of a route concurrently and
// delivers each result on out. Results are tagged with the route id so
// the tick loop can discard them once the route has been superseded.
func fetchRoute(ctx context.Context, store ports.SequenceStore, routeID uuid.UUID, route domain.Route, out chan<- loadedSegment) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, seg := range route {
		i, seg := i, seg
		g.Go(func() error {
			frames, err := fetchSegment(ctx, store, seg.PathID)
			select {
			case out <- loadedSegment{routeID: routeID, index: i, frames: frames, err: err}:
			case <-ctx.Done():
			}
			// Fetch failures drop the segment, they never abort the route.
			return nil
		})
	}
	g.Wait()
}

func fetchSegment(ctx context.Context, store ports.SequenceStore, pathID string) ([]image.Image, error) {
	seq, err := store.GetSequence(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	frames := make([]image.Image, len(seq.Frames))
	for i, frame := range seq.Frames {
		data, err := store.GetFrame(ctx, pathID, frame.File)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %q frame %q: %v", domain.ErrMalformedSequence, pathID, frame.File, err)
		}
		frames[i] = img
	}
	return frames, nil
}

// fetchIdleFrame resolves the single image shown while the rig rests in
// a state. Neutral holds the first frame of the reference sequence at
// the current pose; any other expression holds the last frame of its
// neutral transition there.
func fetchIdleFrame(ctx context.Context, store ports.SequenceStore, state domain.State) (image.Image, error) {
	pathID := domain.ExpressionPathID(domain.ExprNeutral, state.Expression, state.Pose)
	if state.Expression == domain.ExprNeutral {
		pathID = domain.ExpressionPathID(domain.ExprNeutral, idleReferenceExpr, state.Pose)
	}
	frames, err := fetchSegment(ctx, store, pathID)
	if err != nil {
		return nil, err
	}
	if state.Expression == domain.ExprNeutral {
		return frames[0], nil
	}
	return frames[len(frames)-1], nil
}

// idleReferenceExpr names the sequence whose first frame depicts plain
// neutral; a dedicated neutral idle sprite does not exist.
const idleReferenceExpr = domain.ExprHappySoft
