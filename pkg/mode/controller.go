// Package mode implements the interaction state machine: greeting and idle fillers,
// entering and leaving fight mode, and hit counting.
//
// The Controller is the only caller of the sequencer for mode sequences. It is not
// safe for concurrent use; every method runs on the engine loop.
package mode

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/ports"
	"github.com/aretw0/puppet/pkg/sequencer"
	"github.com/aretw0/puppet/pkg/watchdog"
)

// Timer names reported in TimerEvent.
const (
	TimerIdle      = "idle"
	TimerFightIdle = "fight_idle"
)

// Player is the part of the sequencer the controller drives.
type Player interface {
	Play(names []domain.ClipName, onComplete func(), opts ...sequencer.PlayOption)
	Busy() bool
}

// Settings are the tunables of the state machine.
type Settings struct {
	Sequences domain.Sequences
	IdleAfter time.Duration
	FightIdle time.Duration

	PointerEntersFight bool
	ClickEntersFight   bool
}

// DefaultSettings mirrors the stock avatar: 10s timers, pointer entry on.
func DefaultSettings() Settings {
	return Settings{
		Sequences:          domain.DefaultSequences(),
		IdleAfter:          10 * time.Second,
		FightIdle:          10 * time.Second,
		PointerEntersFight: true,
	}
}

// Controller owns the InteractionMode and the hit counter.
type Controller struct {
	player   Player
	settings Settings
	logger   *slog.Logger
	hooks    domain.LifecycleHooks

	idle  *watchdog.Watchdog
	fight *watchdog.Watchdog

	mode    domain.Mode
	hits    int
	started bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers mode, hit and timer hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// New creates a controller in Idle. Call Start to play the greeting.
func New(player Player, clock ports.Clock, sched ports.Scheduler, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		player:   player,
		settings: settings,
		mode:     domain.ModeIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.idle = watchdog.New(TimerIdle, settings.IdleAfter, clock, sched, c.onIdleExpired, watchdog.WithLogger(c.logger))
	c.fight = watchdog.New(TimerFightIdle, settings.FightIdle, clock, sched, c.onFightExpired, watchdog.WithLogger(c.logger))
	return c
}

// Start plays the greeting and arms the idle timer once it completes.
// Later calls are no-ops.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	c.player.Play(c.settings.Sequences.Greeting, c.armIdle)
}

// Stop disarms both timers.
func (c *Controller) Stop() {
	c.idle.Cancel()
	c.fight.Cancel()
}

// PointerEnter handles the pointer reaching the model. It enters fight mode when
// pointer entry is enabled.
func (c *Controller) PointerEnter() bool {
	if !c.settings.PointerEntersFight {
		return c.reject(domain.TriggerPointerEnter, "pointer entry disabled")
	}
	return c.enterFight(domain.TriggerPointerEnter)
}

// Click registers a hit while Fighting, or enters fight mode from Idle when click entry is enabled.
func (c *Controller) Click() bool {
	switch {
	case c.mode == domain.ModeFighting:
		return c.hit()
	case c.mode == domain.ModeIdle && c.settings.ClickEntersFight:
		return c.enterFight(domain.TriggerClick)
	default:
		return c.reject(domain.TriggerClick, "no action in mode")
	}
}

// Activity re-arms the timer relevant to the current mode.
func (c *Controller) Activity() bool {
	switch c.mode {
	case domain.ModeIdle:
		if c.player.Busy() {
			return c.reject(domain.TriggerActivity, "sequence in flight")
		}
		c.armIdle()
		return true
	case domain.ModeFighting:
		c.fight.Arm()
		return true
	default:
		return c.reject(domain.TriggerActivity, "mode transition in flight")
	}
}

// Toggle flips between idle and fight mode, as a UI button would.
// It is ignored while a sequence is in flight. It returns the resulting mode.
func (c *Controller) Toggle() domain.Mode {
	switch c.mode {
	case domain.ModeIdle:
		c.enterFight(domain.TriggerToggle)
	case domain.ModeFighting:
		if c.player.Busy() {
			c.reject(domain.TriggerToggle, "sequence in flight")
			break
		}
		c.exitFight()
	default:
		c.reject(domain.TriggerToggle, "mode transition in flight")
	}
	return c.mode
}

// Dispatch routes a trigger to its entry point.
func (c *Controller) Dispatch(t domain.Trigger) bool {
	switch t {
	case domain.TriggerPointerEnter:
		return c.PointerEnter()
	case domain.TriggerClick:
		return c.Click()
	case domain.TriggerActivity:
		return c.Activity()
	case domain.TriggerToggle:
		before := c.mode
		return c.Toggle() != before
	default:
		return c.reject(t, "unknown trigger")
	}
}

// PlayAdHoc plays names outside the mode sequences, e.g. from the CLI.
// It is accepted only in Idle with nothing in flight. The idle timer is held while
// the list plays and re-armed once it completes, right before done runs.
func (c *Controller) PlayAdHoc(names []domain.ClipName, done func()) bool {
	if c.mode != domain.ModeIdle || c.player.Busy() {
		c.logger.Debug("ad-hoc playback refused", "clips", names, "mode", c.mode, "busy", c.player.Busy())
		return false
	}

	c.idle.Cancel()
	c.player.Play(names, func() {
		if c.mode == domain.ModeIdle {
			c.armIdle()
		}
		if done != nil {
			done()
		}
	})
	return true
}

// Mode returns the current InteractionMode.
func (c *Controller) Mode() domain.Mode { return c.mode }

// HitCount returns the hits registered since the last fight entry.
func (c *Controller) HitCount() int { return c.hits }

// Busy reports whether a sequence is in flight.
func (c *Controller) Busy() bool { return c.player.Busy() }

// IdleArmed reports whether the global idle timer is counting down.
func (c *Controller) IdleArmed() bool { return c.idle.Armed() }

// FightArmed reports whether the fight idle timer is counting down.
func (c *Controller) FightArmed() bool { return c.fight.Armed() }

// Settings returns the tunables the controller was built with.
func (c *Controller) Settings() Settings { return c.settings }

func (c *Controller) enterFight(trigger domain.Trigger) bool {
	if c.mode != domain.ModeIdle {
		return c.reject(trigger, "not idle")
	}
	if c.player.Busy() {
		return c.reject(trigger, "sequence in flight")
	}

	c.idle.Cancel()
	c.hits = 0
	c.setMode(domain.ModeEnteringFight)
	c.player.Play(c.settings.Sequences.EnterFight, func() {
		c.setMode(domain.ModeFighting)
		c.fightIdle()
	})
	return true
}

func (c *Controller) fightIdle() {
	c.player.Play(c.settings.Sequences.FightIdle, c.armFight)
}

func (c *Controller) hit() bool {
	if c.player.Busy() {
		return c.reject(domain.TriggerClick, "sequence in flight")
	}

	c.fight.Cancel()
	c.hits++
	seqs := c.settings.Sequences

	var clips []domain.ClipName
	switch c.hits {
	case 1:
		clips = seqs.LightHit
		c.player.Play(clips, c.fightIdle)
	case 2:
		clips = seqs.HeavyHit
		c.player.Play(clips, c.fightIdle)
	default:
		clips = seqs.Knockout
		c.player.Play(clips, func() {
			c.player.Play(seqs.GetUp, c.fightIdle)
		})
	}

	c.logger.Info("hit", "count", c.hits, "clips", clips)
	if c.hooks.OnHit != nil {
		c.hooks.OnHit(context.Background(), &domain.HitEvent{
			EventBase: domain.NewEventBase(domain.EventHit),
			Count:     c.hits,
			Clips:     clips,
		})
	}
	return true
}

func (c *Controller) exitFight() {
	c.fight.Cancel()
	c.setMode(domain.ModeExitingFight)
	c.player.Play(c.settings.Sequences.ExitFight, func() {
		c.setMode(domain.ModeIdle)
		c.armIdle()
	})
}

func (c *Controller) armIdle() {
	c.fight.Cancel()
	c.idle.Arm()
}

func (c *Controller) armFight() {
	c.idle.Cancel()
	c.fight.Arm()
}

func (c *Controller) onIdleExpired() {
	accepted := c.mode == domain.ModeIdle && !c.player.Busy()
	c.timerFired(TimerIdle, accepted)
	if !accepted {
		return
	}
	c.player.Play(c.settings.Sequences.IdleFiller, func() {
		if c.mode == domain.ModeIdle {
			c.idle.Arm()
		}
	})
}

func (c *Controller) onFightExpired() {
	accepted := c.mode == domain.ModeFighting && !c.player.Busy()
	c.timerFired(TimerFightIdle, accepted)
	if !accepted {
		return
	}
	c.exitFight()
}

func (c *Controller) timerFired(name string, accepted bool) {
	c.logger.Debug("timer fired", "timer", name, "accepted", accepted, "mode", c.mode)
	if c.hooks.OnTimerFire != nil {
		c.hooks.OnTimerFire(context.Background(), &domain.TimerEvent{
			EventBase: domain.NewEventBase(domain.EventTimerFire),
			Timer:     name,
			Accepted:  accepted,
		})
	}
}

func (c *Controller) setMode(to domain.Mode) {
	from := c.mode
	if from == to {
		return
	}
	c.mode = to
	c.logger.Info("mode changed", "from", from, "to", to)
	if c.hooks.OnModeChange != nil {
		c.hooks.OnModeChange(context.Background(), &domain.ModeEvent{
			EventBase: domain.NewEventBase(domain.EventModeChange),
			From:      from,
			To:        to,
		})
	}
}

// reject logs an ignored trigger. Triggers arriving mid-playback are transition
// conflicts and are dropped silently apart from this debug line.
func (c *Controller) reject(t domain.Trigger, reason string) bool {
	c.logger.Debug("trigger ignored", "trigger", t, "mode", c.mode, "reason", reason)
	return false
}
