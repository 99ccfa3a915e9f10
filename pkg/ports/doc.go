/*
Package ports defines the driven ports (interfaces) for the face rig engine.

These interfaces decouple the core routing and playback logic from external
implementations, allowing the engine to work with various sequence stores
and presentation surfaces.

# Key Interfaces

  - SequenceStore: content-addressable provider of sequence manifests and
    frame images (memory, filesystem, REST, or a cache in front of one).
  - FrameSink: receives presented frames from the playback side.
  - Clock: time source, swappable in tests.
*/
package ports
