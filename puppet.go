package puppet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	loamAdapter "github.com/aretw0/puppet/pkg/adapters/loam"
	redisAdapter "github.com/aretw0/puppet/pkg/adapters/redis"
	"github.com/aretw0/puppet/pkg/cache"
	"github.com/aretw0/puppet/pkg/clock"
	"github.com/aretw0/puppet/pkg/config"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/loop"
	"github.com/aretw0/puppet/pkg/mixer"
	"github.com/aretw0/puppet/pkg/mode"
	"github.com/aretw0/puppet/pkg/ports"
	"github.com/aretw0/puppet/pkg/sequencer"
)

// ErrExternalScheduler is returned by Run when the engine was built WithScheduler.
var ErrExternalScheduler = errors.New("engine uses an external scheduler; drive it directly")

// Engine is the high-level entry point for the Puppet library.
// It wires the clip cache, the mixer, the sequencer and the mode controller onto
// one cooperative loop. Its exported methods are safe for concurrent use.
type Engine struct {
	Name string

	cfg    config.Config
	loader ports.ClipLoader
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  ports.Clock
	sched  ports.Scheduler
	loop   *loop.Loop

	cache *cache.Cache
	mixer *mixer.Mixer
	seq   *sequencer.Sequencer
	ctrl  *mode.Controller
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLoader injects a custom ClipLoader, bypassing the configured clip source.
func WithLoader(l ports.ClipLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock replaces the wall clock used by the inactivity timers.
func WithClock(c ports.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithScheduler runs the engine on an external scheduler (e.g. loop.Manual in tests).
// Run is then unavailable and the caller drains the scheduler.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// New initializes a new Engine.
// By default, it reads clips from a Loam library at dir (or clips.dir when dir is empty).
// If WithLoader is provided, dir is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{cfg: config.Default()}
	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if eng.loader == nil {
		loader, name, err := openLoader(dir, eng.cfg)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		eng.Name = name
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	// Enrich logger with library name if available
	if eng.Name != "" {
		eng.logger = eng.logger.With("library", eng.Name)
	}

	if eng.clock == nil {
		eng.clock = clock.New()
	}
	if eng.sched == nil {
		eng.loop = loop.New()
		eng.sched = eng.loop
	}

	eng.cache = cache.New(eng.loader,
		cache.WithLoadTimeout(eng.cfg.Clips.LoadTimeout),
		cache.WithLogger(eng.logger),
		cache.WithLifecycleHooks(eng.hooks),
	)
	eng.mixer = mixer.New()
	eng.seq = sequencer.New(eng.cache, eng.mixer, eng.sched,
		sequencer.WithDefaultTransition(eng.cfg.Transition()),
		sequencer.WithDefaultFade(eng.cfg.Playback.Fade),
		sequencer.WithLogger(eng.logger),
		sequencer.WithLifecycleHooks(eng.hooks),
	)
	eng.ctrl = mode.New(eng.seq, eng.clock, eng.sched, Settings(eng.cfg),
		mode.WithLogger(eng.logger),
		mode.WithLifecycleHooks(eng.hooks),
	)

	return eng, nil
}

func openLoader(dir string, cfg config.Config) (ports.ClipLoader, string, error) {
	switch cfg.Clips.Source {
	case config.SourceRedis:
		r := cfg.Redis
		return redisAdapter.New(r.Addr, r.Password, r.DB, redisAdapter.WithPrefix(r.Prefix)), "redis:" + r.Prefix, nil
	case config.SourceMemory:
		return nil, "", fmt.Errorf("clip source %q requires WithLoader", cfg.Clips.Source)
	}

	if dir == "" {
		dir = cfg.Clips.Dir
	}
	if dir == "" {
		return nil, "", fmt.Errorf("dir is required when no custom loader is provided")
	}
	loader, err := loamAdapter.Open(dir)
	if err != nil {
		return nil, "", err
	}
	abs, _ := filepath.Abs(dir)
	return loader, filepath.Base(abs), nil
}

// Settings derives the state machine settings from a configuration.
func Settings(cfg config.Config) mode.Settings {
	return mode.Settings{
		Sequences:          cfg.Sequences,
		IdleAfter:          cfg.Timers.Idle,
		FightIdle:          cfg.Timers.FightIdle,
		PointerEntersFight: cfg.Triggers.PointerEntersFight,
		ClickEntersFight:   cfg.Triggers.ClickEntersFight,
	}
}

// Run drains the engine loop until ctx ends. With playback.frame_rate > 0 it also
// advances the mixer on its own; set it to 0 when a render loop calls Advance.
func (e *Engine) Run(ctx context.Context) error {
	if e.loop == nil {
		return ErrExternalScheduler
	}

	errCh := make(chan error, 1)
	go func() { errCh <- e.loop.Run(ctx) }()

	if fps := e.cfg.Playback.FrameRate; fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		last := time.Now()
	tick:
		for {
			select {
			case <-ctx.Done():
				break tick
			case now := <-ticker.C:
				dt := now.Sub(last)
				last = now
				e.loop.Post(func() { e.mixer.Update(dt) })
			}
		}
	}

	err := <-errCh
	// The loop has stopped; nothing else touches the core now.
	e.ctrl.Stop()
	e.seq.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Start plays the greeting. The idle timer arms once it completes.
// With the built-in loop it waits for the loop to run the call, so Run must already
// be draining or Start blocks until ctx ends. The greeting stays queued after such a
// timeout and plays once Run starts.
func (e *Engine) Start(ctx context.Context) error {
	return e.sched.Do(ctx, e.ctrl.Start)
}

// PointerEnter reports the pointer reaching the model.
func (e *Engine) PointerEnter(ctx context.Context) (bool, error) {
	return e.Dispatch(ctx, domain.TriggerPointerEnter)
}

// Click reports a click on the model.
func (e *Engine) Click(ctx context.Context) (bool, error) {
	return e.Dispatch(ctx, domain.TriggerClick)
}

// Activity reports generic user input.
func (e *Engine) Activity(ctx context.Context) (bool, error) {
	return e.Dispatch(ctx, domain.TriggerActivity)
}

// Toggle flips between idle and fight mode and returns the resulting mode.
func (e *Engine) Toggle(ctx context.Context) (domain.Mode, error) {
	var m domain.Mode
	err := e.sched.Do(ctx, func() { m = e.ctrl.Toggle() })
	return m, err
}

// Dispatch delivers a trigger and reports whether the state machine accepted it.
func (e *Engine) Dispatch(ctx context.Context, t domain.Trigger) (bool, error) {
	var accepted bool
	err := e.sched.Do(ctx, func() { accepted = e.ctrl.Dispatch(t) })
	return accepted, err
}

// Play runs an ad-hoc clip list through the mode controller. It is refused with
// domain.ErrTransitionConflict unless the avatar is Idle with nothing in flight.
// The returned channel closes when the list completes; it never closes if a mode
// sequence preempts it.
func (e *Engine) Play(ctx context.Context, names ...domain.ClipName) (<-chan struct{}, error) {
	done := make(chan struct{})
	var accepted bool
	err := e.sched.Do(ctx, func() {
		accepted = e.ctrl.PlayAdHoc(names, func() { close(done) })
	})
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, fmt.Errorf("ad-hoc playback: %w", domain.ErrTransitionConflict)
	}
	return done, nil
}

// Advance moves playback forward by dt. Render loops call it once per frame.
func (e *Engine) Advance(ctx context.Context, dt time.Duration) error {
	return e.sched.Do(ctx, func() { e.mixer.Update(dt) })
}

// Snapshot returns the read-only state consumed by render loops and UI controls.
func (e *Engine) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var s domain.Snapshot
	err := e.sched.Do(ctx, func() {
		s = domain.Snapshot{
			Mode:        e.ctrl.Mode(),
			HitCount:    e.ctrl.HitCount(),
			Busy:        e.ctrl.Busy(),
			CurrentClip: e.seq.Current(),
			IdleArmed:   e.ctrl.IdleArmed(),
			FightArmed:  e.ctrl.FightArmed(),
			Pose:        e.mixer.Pose(),
		}
	})
	return s, err
}

// Preload resolves every clip the configured sequences reference.
func (e *Engine) Preload(ctx context.Context) error {
	return e.cache.Preload(ctx, e.cfg.Sequences.Clips()...)
}

// Clips lists the clips the loader can serve.
func (e *Engine) Clips(ctx context.Context) ([]domain.ClipName, error) {
	return e.loader.List(ctx)
}

// Config returns the effective configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Loader returns the underlying ClipLoader used by the engine.
func (e *Engine) Loader() ports.ClipLoader {
	return e.loader
}
