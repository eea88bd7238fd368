/*
Package domain contains the core domain models of the Puppet animation engine.

It defines the vocabulary shared by every other package: clips and their names, the
interaction modes of the avatar, the triggers delivered by the input surface, the
sequence catalog that maps modes to clip lists, the read-only pose snapshot consumed by
render loops, and the lifecycle events emitted while sequences play. This package is
kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Clip: An immutable, named animation resource once loaded.
  - Mode: The interaction state of the avatar (Idle, EnteringFight, Fighting, ExitingFight).
  - Sequences: Which clips play for the greeting, fillers, hits and fight transitions.
  - Snapshot: What an external render loop or UI control may read each frame.
  - LifecycleHooks: Optional callbacks used for logging, metrics and event streaming.
*/
package domain
