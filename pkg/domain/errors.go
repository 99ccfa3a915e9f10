package domain

import "errors"

// ErrRouteNotFound is returned when no sequence path connects two states.
// It is non-fatal: callers jump-cut to the target instead of animating.
var ErrRouteNotFound = errors.New("no route between states")

// ErrSequenceNotFound is returned when a store lookup fails for a path id.
var ErrSequenceNotFound = errors.New("sequence not found")

// ErrMalformedSequence is returned when a manifest violates the frame
// contract (unsorted frames, or missing t=0 / t=1 endpoints).
var ErrMalformedSequence = errors.New("malformed sequence manifest")

// ErrMalformedTrack is returned when driver-supplied keyframe data fails
// validation at ingestion.
var ErrMalformedTrack = errors.New("malformed track data")

// ErrUnknownExpression is returned for an expression outside the closed set.
var ErrUnknownExpression = errors.New("unknown expression")

// ErrUnknownPose is returned for a pose outside the closed set.
var ErrUnknownPose = errors.New("unknown pose")
