/*
Package facerig animates a pre-rendered sprite face.

The rig never interpolates art at runtime: every transition between two
facial states exists as a pre-rendered sequence of frames, and the
engine's job is to pick the right sequences, in the right order and
direction, and play them at a fixed rate.

The package wires four parts together:

  - graph: plans a route of sequence segments between any two states
  - timeline: resolves multi-track keyframes into one effective state
  - viseme: turns phoneme timings into mouth-shape keyframes
  - player: fetches sequences and schedules frame playback

Engine is the high-level entry point; drivers (a manual editor, an
emotion planner, a phoneme aligner, a live tracker) push keyframes and
target states into it and the rig takes care of the rest.
*/
package facerig
