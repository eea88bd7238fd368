package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/puppet/pkg/domain"
)

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClipLoad: func(ctx context.Context, e *domain.ClipEvent) {
			logger.Debug("Clip Loaded", "clip", e.Clip, "took", e.Duration, "err", e.Err)
		},
		OnClipStart: func(ctx context.Context, e *domain.ClipEvent) {
			logger.Debug("Clip Start", "clip", e.Clip, "action", e.Action)
		},
		OnSequenceStart: func(ctx context.Context, e *domain.SequenceEvent) {
			logger.Debug("Sequence Start", "run", e.Run, "clips", e.Clips)
		},
		OnSequenceComplete: func(ctx context.Context, e *domain.SequenceEvent) {
			logger.Debug("Sequence Complete", "run", e.Run)
		},
		OnSequencePreempt: func(ctx context.Context, e *domain.SequenceEvent) {
			logger.Debug("Sequence Preempted", "run", e.Run)
		},
		OnHit: func(ctx context.Context, e *domain.HitEvent) {
			logger.Debug("Hit", "count", e.Count, "clips", e.Clips)
		},
		OnTimerFire: func(ctx context.Context, e *domain.TimerEvent) {
			logger.Debug("Timer Fired", "timer", e.Timer, "accepted", e.Accepted)
		},
	}
}
