package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/puppet"
	redisAdapter "github.com/aretw0/puppet/pkg/adapters/redis"
	"github.com/aretw0/puppet/pkg/config"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Stack is an engine wired with the standard observability sinks.
type Stack struct {
	Engine   *puppet.Engine
	Events   *observability.Broadcaster
	Registry *prometheus.Registry
	Logger   *slog.Logger

	closers []func() error
}

// NewStack creates the engine for cfg with metrics, the event broadcaster and,
// when redis.publish is set, the Redis event publisher. Extra hooks run last.
func NewStack(cfg config.Config, logger *slog.Logger, extra ...domain.LifecycleHooks) (*Stack, error) {
	s := &Stack{
		Events:   observability.NewBroadcaster(),
		Registry: prometheus.NewRegistry(),
		Logger:   logger,
	}

	metrics, err := observability.NewMetrics(s.Registry)
	if err != nil {
		return nil, fmt.Errorf("error registering metrics: %w", err)
	}

	hooks := []domain.LifecycleHooks{metrics.Hooks(), s.Events.Hooks()}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = append(hooks, createDebugHooks(logger))
	}
	if cfg.Redis.Publish {
		conn := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisAdapter.WithPrefix(cfg.Redis.Prefix))
		pub := redisAdapter.NewPublisher(conn.Client(), cfg.Redis.Prefix, logger)
		hooks = append(hooks, pub.Hooks())
		s.closers = append(s.closers, conn.Client().Close)
		logger.Info("Publishing events", "channel", pub.Channel())
	}
	hooks = append(hooks, extra...)

	engine, err := puppet.New("",
		puppet.WithConfig(cfg),
		puppet.WithLogger(logger),
		puppet.WithLifecycleHooks(observability.MergeHooks(hooks...)),
	)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	s.Engine = engine
	if closer, ok := engine.Loader().(interface{ Close() error }); ok {
		s.closers = append(s.closers, closer.Close)
	}
	return s, nil
}

// Close releases the connections opened by NewStack.
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	s.closers = nil
	return errors.Join(errs...)
}
