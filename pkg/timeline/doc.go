/*
Package timeline merges the three keyframe tracks into one effective state
per instant.

Tracks is the container the drivers write into: the manual editor mutates
keyframes arbitrarily, the emotion planner appends expression keyframes, and
the viseme builder appends phoneme keyframes. Raw driver payloads pass
through the ingestion helpers, which validate and reject malformed data at
the boundary instead of letting it reach the compositor.

Resolve and Combine are pure functions of track contents: recomputing them
on unchanged tracks yields identical output, and neither mutates the tracks.
*/
package timeline
