package puppet_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/pkg/adapters/memory"
	"github.com/aretw0/puppet/pkg/config"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/loop"
)

// ExampleNew_memory drives the engine deterministically: clips come from memory,
// and a manual scheduler stands in for the built-in loop.
func ExampleNew_memory() {
	var clips []domain.Clip
	for _, name := range domain.DefaultSequences().Clips() {
		clips = append(clips, domain.Clip{Name: name, Duration: time.Second})
	}

	cfg := config.Default()
	cfg.Playback.Transition = "cut"

	engine, err := puppet.New("",
		puppet.WithLoader(memory.NewLoader(clips...)),
		puppet.WithConfig(cfg),
		puppet.WithScheduler(loop.NewManual()),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := engine.Preload(ctx); err != nil {
		log.Fatal(err)
	}
	if err := engine.Start(ctx); err != nil {
		log.Fatal(err)
	}

	// Let the three greeting clips play out.
	for i := 0; i < 3; i++ {
		_ = engine.Advance(ctx, time.Second)
	}

	accepted, _ := engine.PointerEnter(ctx)
	snap, _ := engine.Snapshot(ctx)

	fmt.Printf("Accepted: %v\n", accepted)
	fmt.Printf("Mode: %s\n", snap.Mode)
	fmt.Printf("Clip: %s\n", snap.CurrentClip)
	// Output:
	// Accepted: true
	// Mode: entering_fight
	// Clip: standing_to_fight
}
