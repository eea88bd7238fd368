// Package watchdog provides the re-armable inactivity timers of the mode state machine.
package watchdog

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/puppet/pkg/ports"
)

// Watchdog fires onExpire once after a period without Arm or Cancel.
// Expiry is delivered through the scheduler, so Arm, Cancel and the callback all
// run on the same thread and a stale expiry can be recognised and dropped.
type Watchdog struct {
	name     string
	after    time.Duration
	clock    ports.Clock
	sched    ports.Scheduler
	onExpire func()
	logger   *slog.Logger

	timer ports.Timer
	gen   uint64
}

// Option configures a Watchdog.
type Option func(*Watchdog)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watchdog) {
		w.logger = logger
	}
}

// New creates a disarmed watchdog.
func New(name string, after time.Duration, clock ports.Clock, sched ports.Scheduler, onExpire func(), opts ...Option) *Watchdog {
	w := &Watchdog{
		name:     name,
		after:    after,
		clock:    clock,
		sched:    sched,
		onExpire: onExpire,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w
}

// Arm cancels any pending expiry and starts a fresh countdown.
func (w *Watchdog) Arm() {
	w.Cancel()
	gen := w.gen
	w.timer = w.clock.AfterFunc(w.after, func() {
		w.sched.Post(func() { w.expire(gen) })
	})
	w.logger.Debug("timer armed", "timer", w.name, "after", w.after)
}

// Cancel disarms the watchdog. A callback already queued for the old countdown is dropped.
func (w *Watchdog) Cancel() {
	w.gen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Armed reports whether a countdown is pending.
func (w *Watchdog) Armed() bool {
	return w.timer != nil
}

// Name returns the watchdog label used in logs and events.
func (w *Watchdog) Name() string {
	return w.name
}

// After returns the countdown length.
func (w *Watchdog) After() time.Duration {
	return w.after
}

func (w *Watchdog) expire(gen uint64) {
	if gen != w.gen || w.timer == nil {
		return
	}
	w.timer = nil
	w.logger.Debug("timer expired", "timer", w.name)
	w.onExpire()
}
