// Package cache memoizes clips by name with at most one in-flight load per name.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/ports"
	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a single clip load.
const DefaultLoadTimeout = 10 * time.Second

// Cache resolves clip names through a ClipLoader and keeps every successful result
// for its lifetime. Failures are never stored, so a later Resolve retries the load.
type Cache struct {
	loader  ports.ClipLoader
	timeout time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	group singleflight.Group

	mu    sync.RWMutex
	clips map[domain.ClipName]*domain.Clip
	loads map[domain.ClipName]int
}

// Option configures a Cache.
type Option func(*Cache)

// WithLoadTimeout bounds each load. Zero disables the bound.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers the OnClipLoad hook.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Cache) {
		c.hooks = hooks
	}
}

// New creates an empty cache over loader.
func New(loader ports.ClipLoader, opts ...Option) *Cache {
	c := &Cache{
		loader:  loader,
		timeout: DefaultLoadTimeout,
		clips:   make(map[domain.ClipName]*domain.Clip),
		loads:   make(map[domain.ClipName]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Peek returns the resolved clip for name without loading it.
func (c *Cache) Peek(name domain.ClipName) (*domain.Clip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	clip, ok := c.clips[name]
	return clip, ok
}

// Resolve returns the clip for name, loading it on first use.
// Concurrent calls for the same name share one load and receive the same *Clip.
// Cancelling ctx abandons this caller's wait only; the shared load keeps going.
func (c *Cache) Resolve(ctx context.Context, name domain.ClipName) (*domain.Clip, error) {
	if clip, ok := c.Peek(name); ok {
		return clip, nil
	}

	ch := c.group.DoChan(string(name), func() (any, error) {
		// A racing load may have finished between Peek and DoChan.
		if clip, ok := c.Peek(name); ok {
			return clip, nil
		}
		return c.load(name)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Clip), nil
	case <-ctx.Done():
		return nil, &domain.LoadError{Name: name, Err: ctx.Err()}
	}
}

func (c *Cache) load(name domain.ClipName) (*domain.Clip, error) {
	ctx := context.Background()
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}
	defer cancel()

	type result struct {
		clip *domain.Clip
		err  error
	}
	done := make(chan result, 1)
	start := time.Now()

	c.mu.Lock()
	c.loads[name]++
	c.mu.Unlock()

	go func() {
		clip, err := c.loader.Load(ctx, name)
		done <- result{clip, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		// The loader ignored its context; stop waiting for it.
		res.err = domain.ErrLoadTimeout
	}
	if res.err == nil {
		res.err = res.clip.Validate()
	}
	if res.err == nil && res.clip.Name != name {
		res.err = fmt.Errorf("%w: loader returned %q", domain.ErrClipMalformed, res.clip.Name)
	}
	if errors.Is(res.err, context.DeadlineExceeded) {
		res.err = fmt.Errorf("%w: %w", domain.ErrLoadTimeout, res.err)
	}

	c.emitLoad(name, time.Since(start), res.err)

	if res.err != nil {
		var loadErr *domain.LoadError
		if errors.As(res.err, &loadErr) {
			return nil, loadErr
		}
		c.logger.Warn("clip load failed", "clip", name, "err", res.err)
		return nil, &domain.LoadError{Name: name, Err: res.err}
	}

	c.mu.Lock()
	c.clips[name] = res.clip
	c.mu.Unlock()
	c.logger.Debug("clip loaded", "clip", name, "duration", res.clip.Duration)
	return res.clip, nil
}

func (c *Cache) emitLoad(name domain.ClipName, elapsed time.Duration, err error) {
	if c.hooks.OnClipLoad == nil {
		return
	}
	evt := &domain.ClipEvent{
		EventBase: domain.NewEventBase(domain.EventClipLoad),
		Clip:      name,
		Duration:  elapsed,
	}
	if err != nil {
		evt.Err = err.Error()
	}
	c.hooks.OnClipLoad(context.Background(), evt)
}

// Preload resolves every name and joins the failures.
func (c *Cache) Preload(ctx context.Context, names ...domain.ClipName) error {
	var errs []error
	for _, name := range names {
		if _, err := c.Resolve(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Names returns the resolved clip names, sorted.
func (c *Cache) Names() []domain.ClipName {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]domain.ClipName, 0, len(c.clips))
	for n := range c.clips {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Len returns the number of resolved clips.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clips)
}

// Loads reports how many times the loader was invoked for name.
func (c *Cache) Loads(name domain.ClipName) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads[name]
}
