/*
Package puppet is an animation sequencing engine for an interactive 3D avatar.

It loads named animation clips on demand, caches them, plays them back-to-back
or cross-faded on a single playback channel, and layers an interaction mode state
machine on top: a greeting, idle fillers on inactivity, and a "fight mode" where
clicks land hits that escalate from a light combo to a knockout.

# Concept

Every callback of the core (clip-load completions, "clip finished" events from the
mixer, inactivity timer expiries and user triggers) runs on one cooperative loop,
so the state machine holds no locks. The render loop and input surfaces talk to
the Engine from their own goroutines; each call hops onto the loop.

# Architecture

  - pkg/domain: clips, modes, triggers, sequences, events.
  - pkg/cache: name-keyed clip cache with single-flight loads.
  - pkg/mixer: the playback channel.
  - pkg/sequencer: ordered clip lists with cut or cross-fade transitions and preemption.
  - pkg/mode: the interaction state machine and its two watchdogs.
  - pkg/adapters: Loam, Redis and in-memory clip libraries, HTTP and MCP surfaces.

# Usage

	eng, err := puppet.New("./clips")
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go eng.Run(ctx)
	_ = eng.Start(ctx) // greeting, then the idle timer

	// From the input surface:
	accepted, _ := eng.PointerEnter(ctx)

	// From the render loop:
	snap, _ := eng.Snapshot(ctx)
	fmt.Println(snap.Mode, snap.CurrentClip, accepted)
*/
package puppet
