/*
Package ports defines the driven ports (interfaces) for the Puppet engine.

These interfaces decouple the animation core from resource storage, the render
loop, wall-clock time and the thread that owns the playback channel.

# Key Interfaces

  - ClipLoader: resolves a clip name to an immutable Clip (Loam, Redis, Memory).
  - PlaybackChannel: the mixer that plays, cuts and cross-fades clips.
  - Clock: schedules one-shot callbacks for inactivity timers.
  - Scheduler: serializes every callback onto the single logical thread.
*/
package ports
