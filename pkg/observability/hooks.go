package observability

import (
	"context"

	"github.com/aretw0/puppet/pkg/domain"
)

// MergeHooks fans every callback out to each non-nil callback of hooks, in order.
func MergeHooks(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClipLoad:         fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.ClipEvent) { return h.OnClipLoad }),
		OnClipStart:        fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.ClipEvent) { return h.OnClipStart }),
		OnClipError:        fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.ClipEvent) { return h.OnClipError }),
		OnFadeFallback:     fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.ClipEvent) { return h.OnFadeFallback }),
		OnSequenceStart:    fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.SequenceEvent) { return h.OnSequenceStart }),
		OnSequenceComplete: fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.SequenceEvent) { return h.OnSequenceComplete }),
		OnSequencePreempt:  fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.SequenceEvent) { return h.OnSequencePreempt }),
		OnModeChange:       fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.ModeEvent) { return h.OnModeChange }),
		OnHit:              fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.HitEvent) { return h.OnHit }),
		OnTimerFire:        fan(hooks, func(h domain.LifecycleHooks) func(context.Context, *domain.TimerEvent) { return h.OnTimerFire }),
	}
}

func fan[E any](hooks []domain.LifecycleHooks, pick func(domain.LifecycleHooks) func(context.Context, *E)) func(context.Context, *E) {
	var fns []func(context.Context, *E)
	for _, h := range hooks {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *E) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}

// EventHooks routes every event to fn.
func EventHooks(fn func(context.Context, domain.Event)) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClipLoad:         func(ctx context.Context, e *domain.ClipEvent) { fn(ctx, e) },
		OnClipStart:        func(ctx context.Context, e *domain.ClipEvent) { fn(ctx, e) },
		OnClipError:        func(ctx context.Context, e *domain.ClipEvent) { fn(ctx, e) },
		OnFadeFallback:     func(ctx context.Context, e *domain.ClipEvent) { fn(ctx, e) },
		OnSequenceStart:    func(ctx context.Context, e *domain.SequenceEvent) { fn(ctx, e) },
		OnSequenceComplete: func(ctx context.Context, e *domain.SequenceEvent) { fn(ctx, e) },
		OnSequencePreempt:  func(ctx context.Context, e *domain.SequenceEvent) { fn(ctx, e) },
		OnModeChange:       func(ctx context.Context, e *domain.ModeEvent) { fn(ctx, e) },
		OnHit:              func(ctx context.Context, e *domain.HitEvent) { fn(ctx, e) },
		OnTimerFire:        func(ctx context.Context, e *domain.TimerEvent) { fn(ctx, e) },
	}
}
