// Package player schedules playback of routed sequences against a
// frame sink.
//
// The player is tick-driven: a host loop (or Run) calls Tick with the
// current time, and the player advances frames at a fixed rate,
// crossfading between them so that low-rate sprite playback reads as
// continuous motion. Sequence fetches happen on background goroutines
// and never block a tick; results are applied on the next tick, and a
// result belonging to a superseded route is discarded.
package player
