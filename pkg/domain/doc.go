/*
Package domain contains the core domain models for the face rig engine.

It defines the fundamental entities of the character rig: the two orthogonal
appearance axes (Expression and Pose), the combined State, the pre-rendered
Sequence connecting two states, and the Segment/Route plan produced by the
route planner. It also defines the keyframe types for the three animation
tracks and the derived CombinedKeyframe export format.

This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Expression / Pose: closed sets of discrete appearance variants.
  - State: an (Expression, Pose) pair, the unit of routing.
  - Sequence: a bidirectional pre-rendered frame set between two states.
  - Segment / Route: one directed traversal of a Sequence, and an ordered
    plan of such traversals.
  - PoseKeyframe / ExpressionKeyframe / PhonemeKeyframe: sparse target-state
    requests on the three tracks.
  - CombinedKeyframe: the resolved, time-ordered export timeline entry.
*/
package domain
