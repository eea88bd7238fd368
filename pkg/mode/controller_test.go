package mode

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/puppet/pkg/clock"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/loop"
	"github.com/aretw0/puppet/pkg/mixer"
	"github.com/aretw0/puppet/pkg/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clipLen = 100 * time.Millisecond

type readyClips map[domain.ClipName]*domain.Clip

func (r readyClips) Peek(name domain.ClipName) (*domain.Clip, bool) {
	c, ok := r[name]
	return c, ok
}

func (r readyClips) Resolve(_ context.Context, name domain.ClipName) (*domain.Clip, error) {
	if c, ok := r[name]; ok {
		return c, nil
	}
	return nil, &domain.LoadError{Name: name, Err: domain.ErrClipNotFound}
}

type harness struct {
	ctrl   *Controller
	mix    *mixer.Mixer
	sched  *loop.Manual
	clock  *clock.Fake
	played []domain.ClipName
	timers []domain.TimerEvent
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	clips := readyClips{}
	for _, n := range settings.Sequences.Clips() {
		clips[n] = &domain.Clip{Name: n, Duration: clipLen}
	}

	h := &harness{
		mix:   mixer.New(),
		sched: loop.NewManual(),
		clock: clock.NewFake(time.Unix(0, 0)),
	}
	hooks := domain.LifecycleHooks{
		OnClipStart: func(_ context.Context, e *domain.ClipEvent) { h.played = append(h.played, e.Clip) },
		OnTimerFire: func(_ context.Context, e *domain.TimerEvent) { h.timers = append(h.timers, *e) },
	}
	seq := sequencer.New(clips, h.mix, h.sched,
		sequencer.WithDefaultTransition(sequencer.Cut),
		sequencer.WithLifecycleHooks(hooks))
	t.Cleanup(seq.Close)
	h.ctrl = New(seq, h.clock, h.sched, settings, WithLifecycleHooks(hooks))
	return h
}

// finish lets n clips run to their end.
func (h *harness) finish(n int) {
	for i := 0; i < n; i++ {
		h.mix.Update(clipLen)
		h.sched.Drain()
	}
}

func (h *harness) wait(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Drain()
}

func (h *harness) greet(t *testing.T) {
	t.Helper()
	h.ctrl.Start()
	h.finish(3)
	require.True(t, h.ctrl.IdleArmed())
	h.played = nil
}

func (h *harness) enterFight(t *testing.T) {
	t.Helper()
	require.True(t, h.ctrl.PointerEnter())
	h.finish(2)
	require.Equal(t, domain.ModeFighting, h.ctrl.Mode())
	require.True(t, h.ctrl.FightArmed())
	h.played = nil
}

func (h *harness) assertExclusiveTimers(t *testing.T) {
	t.Helper()
	assert.False(t, h.ctrl.IdleArmed() && h.ctrl.FightArmed(), "both timers armed")
}

func TestStart_GreetingThenIdleTimer(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.ctrl.Start()
	h.ctrl.Start()

	assert.True(t, h.ctrl.Busy())
	assert.False(t, h.ctrl.IdleArmed(), "idle timer waits for the greeting")

	h.finish(3)
	assert.Equal(t, domain.Names("standing_up", "stretch", "point"), h.played)
	assert.False(t, h.ctrl.Busy())
	assert.True(t, h.ctrl.IdleArmed())
	assert.Equal(t, domain.ModeIdle, h.ctrl.Mode())
}

func TestIdleTimeout_DispatchesFillerOnce(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.greet(t)

	h.wait(10 * time.Second)
	assert.Equal(t, domain.Names("stretch"), h.played)
	assert.False(t, h.ctrl.IdleArmed())

	// Nothing else is dispatched while the filler plays.
	h.wait(30 * time.Second)
	assert.Len(t, h.timers, 1)

	h.finish(2)
	assert.Equal(t, domain.Names("stretch", "point"), h.played)
	assert.True(t, h.ctrl.IdleArmed(), "re-armed after the filler")
}

func TestIdleTimeout_ActivityRestartsCountdown(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.greet(t)

	h.wait(9 * time.Second)
	assert.True(t, h.ctrl.Activity())
	h.wait(9 * time.Second)
	assert.Empty(t, h.played)

	h.wait(time.Second)
	assert.Equal(t, domain.Names("stretch"), h.played)
}

func TestActivity_IgnoredWhileIdleSequencePlays(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.ctrl.Start()

	assert.False(t, h.ctrl.Activity())
	assert.False(t, h.ctrl.IdleArmed())
}

func TestScenario_EnterHitExit(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.greet(t)

	require.True(t, h.ctrl.PointerEnter())
	assert.Equal(t, domain.ModeEnteringFight, h.ctrl.Mode())
	assert.False(t, h.ctrl.IdleArmed())
	h.finish(1)
	assert.Equal(t, domain.ModeFighting, h.ctrl.Mode())
	h.finish(1)
	assert.True(t, h.ctrl.FightArmed())
	h.assertExclusiveTimers(t)

	require.True(t, h.ctrl.Click())
	assert.False(t, h.ctrl.FightArmed())
	h.finish(3)
	assert.True(t, h.ctrl.FightArmed())

	h.wait(10 * time.Second)
	assert.Equal(t, domain.ModeExitingFight, h.ctrl.Mode())
	h.finish(1)

	assert.Equal(t, domain.Names(
		"standing_to_fight", "fight_idle",
		"hit_1", "punch_1", "fight_idle",
		"fight_to_standing",
	), h.played)
	assert.Equal(t, domain.ModeIdle, h.ctrl.Mode())
	assert.True(t, h.ctrl.IdleArmed())
	h.assertExclusiveTimers(t)
}

func TestHits_LightHeavyKnockout(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.greet(t)
	h.enterFight(t)
	assert.Equal(t, 0, h.ctrl.HitCount())

	require.True(t, h.ctrl.Click())
	h.finish(3)
	require.True(t, h.ctrl.Click())
	h.finish(3)
	require.True(t, h.ctrl.Click())
	assert.Equal(t, 3, h.ctrl.HitCount())
	h.finish(3)

	assert.Equal(t, domain.Names(
		"hit_1", "punch_1", "fight_idle",
		"hit_2", "punch_2", "fight_idle",
		"ko", "getting_up", "fight_idle",
	), h.played)

	// The counter survives leaving fight mode and resets on the next entry.
	h.wait(10 * time.Second)
	h.finish(1)
	assert.Equal(t, domain.ModeIdle, h.ctrl.Mode())
	assert.Equal(t, 3, h.ctrl.HitCount())

	require.True(t, h.ctrl.PointerEnter())
	assert.Equal(t, 0, h.ctrl.HitCount())
}

func TestGuard_TriggersIgnoredWhileBusy(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.ctrl.Start()
	assert.False(t, h.ctrl.PointerEnter(), "greeting in flight")
	assert.Equal(t, domain.ModeIdle, h.ctrl.Mode())
	h.finish(3)

	h.enterFight(t)
	require.True(t, h.ctrl.Click())
	assert.False(t, h.ctrl.Click(), "hit reaction in flight")
	assert.Equal(t, 1, h.ctrl.HitCount())

	// Activity re-arms the fight timer even mid-reaction; its expiry is then a no-op.
	assert.True(t, h.ctrl.Activity())
	h.wait(10 * time.Second)
	require.NotEmpty(t, h.timers)
	last := h.timers[len(h.timers)-1]
	assert.Equal(t, TimerFightIdle, last.Timer)
	assert.False(t, last.Accepted)
	assert.Equal(t, domain.ModeFighting, h.ctrl.Mode())
	assert.NotContains(t, h.played, domain.ClipName("fight_to_standing"))

	h.finish(3)
	assert.True(t, h.ctrl.FightArmed())
	h.assertExclusiveTimers(t)
}

func TestToggle(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.greet(t)

	assert.Equal(t, domain.ModeEnteringFight, h.ctrl.Toggle())
	assert.Equal(t, domain.ModeEnteringFight, h.ctrl.Toggle(), "ignored mid-transition")
	h.finish(1)
	assert.Equal(t, domain.ModeFighting, h.ctrl.Toggle(), "ignored while fight_idle plays")
	h.finish(1)

	assert.Equal(t, domain.ModeExitingFight, h.ctrl.Toggle())
	assert.False(t, h.ctrl.FightArmed())
	h.finish(1)
	assert.Equal(t, domain.ModeIdle, h.ctrl.Mode())
	assert.True(t, h.ctrl.IdleArmed())
}

func TestEntryTriggers_Configurable(t *testing.T) {
	tests := []struct {
		name      string
		pointer   bool
		click     bool
		trigger   domain.Trigger
		wantEnter bool
	}{
		{"pointer enabled", true, false, domain.TriggerPointerEnter, true},
		{"pointer disabled", false, true, domain.TriggerPointerEnter, false},
		{"click enabled", false, true, domain.TriggerClick, true},
		{"click disabled", true, false, domain.TriggerClick, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			settings.PointerEntersFight = tt.pointer
			settings.ClickEntersFight = tt.click
			h := newHarness(t, settings)
			h.greet(t)

			assert.Equal(t, tt.wantEnter, h.ctrl.Dispatch(tt.trigger))
			assert.Equal(t, tt.wantEnter, h.ctrl.Mode() == domain.ModeEnteringFight)
		})
	}
}

func TestPlayAdHoc(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	assert.True(t, h.ctrl.PlayAdHoc(domain.Names("hit_1"), nil), "accepted before Start")
	h.finish(1)
	assert.True(t, h.ctrl.IdleArmed())

	h.played = nil
	h.ctrl.Start()
	assert.False(t, h.ctrl.PlayAdHoc(domain.Names("hit_1"), nil), "greeting in flight")
	h.finish(3)

	done := false
	require.True(t, h.ctrl.PlayAdHoc(domain.Names("punch_1", "ko"), func() { done = true }))
	assert.False(t, h.ctrl.IdleArmed(), "held while playing")
	h.finish(2)
	assert.True(t, done)
	assert.True(t, h.ctrl.IdleArmed())
	assert.Equal(t, domain.Names("standing_up", "stretch", "point", "punch_1", "ko"), h.played)

	h.enterFight(t)
	assert.False(t, h.ctrl.PlayAdHoc(domain.Names("hit_1"), nil))
	assert.False(t, h.ctrl.Busy())
	assert.True(t, h.ctrl.FightArmed(), "fight timer untouched")
	h.assertExclusiveTimers(t)
}
