package redis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aretw0/puppet/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Publisher streams lifecycle events as JSON on the <prefix>events channel.
type Publisher struct {
	client *backend.Client
	prefix string
	logger *slog.Logger
}

// NewPublisher creates a publisher. A nil logger discards publish failures.
func NewPublisher(client *backend.Client, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{client: client, prefix: prefix, logger: logger}
}

// Channel returns the pub/sub channel name.
func (p *Publisher) Channel() string {
	return p.prefix + "events"
}

// Publish sends one event. Failures are logged, never returned to the engine.
func (p *Publisher) Publish(ctx context.Context, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "err", err)
		return
	}
	if err := p.client.Publish(ctx, p.Channel(), data).Err(); err != nil {
		p.logger.Error("failed to publish event", "channel", p.Channel(), "err", err)
	}
}

// Hooks returns lifecycle hooks publishing every event.
func (p *Publisher) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClipLoad:         func(ctx context.Context, e *domain.ClipEvent) { p.Publish(ctx, e) },
		OnClipStart:        func(ctx context.Context, e *domain.ClipEvent) { p.Publish(ctx, e) },
		OnClipError:        func(ctx context.Context, e *domain.ClipEvent) { p.Publish(ctx, e) },
		OnFadeFallback:     func(ctx context.Context, e *domain.ClipEvent) { p.Publish(ctx, e) },
		OnSequenceStart:    func(ctx context.Context, e *domain.SequenceEvent) { p.Publish(ctx, e) },
		OnSequenceComplete: func(ctx context.Context, e *domain.SequenceEvent) { p.Publish(ctx, e) },
		OnSequencePreempt:  func(ctx context.Context, e *domain.SequenceEvent) { p.Publish(ctx, e) },
		OnModeChange:       func(ctx context.Context, e *domain.ModeEvent) { p.Publish(ctx, e) },
		OnHit:              func(ctx context.Context, e *domain.HitEvent) { p.Publish(ctx, e) },
		OnTimerFire:        func(ctx context.Context, e *domain.TimerEvent) { p.Publish(ctx, e) },
	}
}
