package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/puppet/pkg/domain"
)

// Play runs names (or the greeting when empty) and returns once the list completes or ctx ends.
func Play(ctx context.Context, stack *Stack, names []domain.ClipName) error {
	engine := stack.Engine
	if engine.Config().Playback.FrameRate <= 0 {
		return fmt.Errorf("play needs playback.frame_rate > 0 to advance clips")
	}
	if len(names) == 0 {
		names = engine.Config().Sequences.Greeting
	}

	runCtx, stopEngine := context.WithCancel(ctx)
	defer stopEngine()
	engineErr := make(chan error, 1)
	go func() { engineErr <- engine.Run(runCtx) }()

	done, err := engine.Play(ctx, names...)
	if err != nil {
		return fmt.Errorf("error starting playback: %w", err)
	}

	interrupted := false
	select {
	case <-done:
	case <-ctx.Done():
		interrupted = true
	}

	stopEngine()
	if err := <-engineErr; err != nil {
		return err
	}
	if interrupted {
		printSystemMessage("Interrupted.")
		return nil
	}
	printSystemMessage("Played %d clip(s).", len(names))
	return nil
}
