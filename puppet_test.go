package puppet_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/internal/testutils"
	"github.com/aretw0/puppet/pkg/adapters/memory"
	"github.com/aretw0/puppet/pkg/clock"
	"github.com/aretw0/puppet/pkg/config"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualEngine struct {
	*puppet.Engine
	sched     *loop.Manual
	clock     *clock.Fake
	played    []domain.ClipName
	modes     []domain.Mode
	fallbacks int
}

func newManualEngine(t *testing.T) *manualEngine {
	t.Helper()
	cfg := config.Default()
	cfg.Playback.Transition = "cut"
	return newManualEngineWith(t, cfg, testutils.FixtureClips())
}

func newManualEngineWith(t *testing.T, cfg config.Config, clips []domain.Clip) *manualEngine {
	t.Helper()
	m := &manualEngine{
		sched: loop.NewManual(),
		clock: clock.NewFake(time.Unix(0, 0)),
	}

	// Preload so every clip is resolved synchronously.
	loader := memory.NewLoader(clips...)
	eng, err := puppet.New("",
		puppet.WithLoader(loader),
		puppet.WithConfig(cfg),
		puppet.WithScheduler(m.sched),
		puppet.WithClock(m.clock),
		puppet.WithLifecycleHooks(domain.LifecycleHooks{
			OnClipStart:    func(_ context.Context, e *domain.ClipEvent) { m.played = append(m.played, e.Clip) },
			OnModeChange:   func(_ context.Context, e *domain.ModeEvent) { m.modes = append(m.modes, e.To) },
			OnFadeFallback: func(context.Context, *domain.ClipEvent) { m.fallbacks++ },
		}),
	)
	require.NoError(t, err)
	require.NoError(t, eng.Preload(context.Background()))
	m.Engine = eng
	return m
}

func (m *manualEngine) finish(t *testing.T, clips int) {
	t.Helper()
	for i := 0; i < clips; i++ {
		require.NoError(t, m.Advance(context.Background(), testutils.ClipLength))
	}
}

func TestEngine_FullScenario(t *testing.T) {
	eng := newManualEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.Start(ctx))
	eng.finish(t, 3)

	snap, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, snap.Mode)
	assert.True(t, snap.IdleArmed)
	assert.False(t, snap.Busy)

	accepted, err := eng.PointerEnter(ctx)
	require.NoError(t, err)
	assert.True(t, accepted)
	eng.finish(t, 2)

	accepted, err = eng.Click(ctx)
	require.NoError(t, err)
	assert.True(t, accepted)

	snap, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Busy)
	assert.Equal(t, domain.ClipName("hit_1"), snap.CurrentClip)
	assert.Equal(t, 1, snap.HitCount)
	require.Len(t, snap.Pose.Layers, 1)

	accepted, err = eng.Click(ctx)
	require.NoError(t, err)
	assert.False(t, accepted, "ignored while the reaction plays")

	eng.finish(t, 3)
	eng.clock.Advance(10 * time.Second)
	eng.sched.Drain()
	eng.finish(t, 1)

	assert.Equal(t, domain.Names(
		"standing_up", "stretch", "point",
		"standing_to_fight", "fight_idle",
		"hit_1", "punch_1", "fight_idle",
		"fight_to_standing",
	), eng.played)
	assert.Equal(t, []domain.Mode{
		domain.ModeEnteringFight, domain.ModeFighting, domain.ModeExitingFight, domain.ModeIdle,
	}, eng.modes)

	snap, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, snap.Mode)
	assert.True(t, snap.IdleArmed)
	assert.False(t, snap.FightArmed)
}

// frames advances playback in 16ms steps, as a 60 fps render loop would.
func (m *manualEngine) frames(t *testing.T, total time.Duration) {
	t.Helper()
	const frame = 16 * time.Millisecond
	for spent := time.Duration(0); spent < total; spent += frame {
		require.NoError(t, m.Advance(context.Background(), frame))
	}
}

func TestEngine_FullScenario_CrossFade(t *testing.T) {
	const clipLength = time.Second
	clips := testutils.FixtureClips()
	for i := range clips {
		clips[i].Duration = clipLength
	}
	eng := newManualEngineWith(t, config.Default(), clips)
	ctx := context.Background()

	require.NoError(t, eng.Start(ctx))
	eng.frames(t, 3*clipLength+200*time.Millisecond)

	snap, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, snap.Mode)
	assert.True(t, snap.IdleArmed)
	assert.False(t, snap.Busy)

	accepted, err := eng.PointerEnter(ctx)
	require.NoError(t, err)
	require.True(t, accepted)
	eng.frames(t, 2*clipLength+200*time.Millisecond)

	snap, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeFighting, snap.Mode)
	assert.True(t, snap.FightArmed)

	accepted, err = eng.Click(ctx)
	require.NoError(t, err)
	require.True(t, accepted)
	eng.frames(t, 16*time.Millisecond)

	// Mid-fade both clips contribute and the weights still sum to one.
	snap, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Pose.Layers, 2)
	assert.Equal(t, domain.ClipName("hit_1"), snap.CurrentClip)
	assert.InDelta(t, 1.0, snap.Pose.Layers[0].Weight+snap.Pose.Layers[1].Weight, 1e-9)

	eng.frames(t, 3*clipLength+200*time.Millisecond)
	eng.clock.Advance(10 * time.Second)
	eng.sched.Drain()
	eng.frames(t, clipLength+200*time.Millisecond)

	assert.Equal(t, domain.Names(
		"standing_up", "stretch", "point",
		"standing_to_fight", "fight_idle",
		"hit_1", "punch_1", "fight_idle",
		"fight_to_standing",
	), eng.played)
	assert.Equal(t, []domain.Mode{
		domain.ModeEnteringFight, domain.ModeFighting, domain.ModeExitingFight, domain.ModeIdle,
	}, eng.modes)
	assert.Zero(t, eng.fallbacks)

	snap, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, snap.Mode)
	assert.True(t, snap.IdleArmed)
	require.Len(t, snap.Pose.Layers, 1)
	assert.Equal(t, domain.ClipName("fight_to_standing"), snap.Pose.Layers[0].Clip)
	assert.Equal(t, 1.0, snap.Pose.Layers[0].Weight)
}

func TestEngine_PlayRefusedOutsideIdle(t *testing.T) {
	eng := newManualEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))

	_, err := eng.Play(ctx, "stretch")
	assert.ErrorIs(t, err, domain.ErrTransitionConflict, "greeting in flight")
	eng.finish(t, 3)

	accepted, err := eng.PointerEnter(ctx)
	require.NoError(t, err)
	require.True(t, accepted)

	_, err = eng.Play(ctx, "stretch")
	assert.ErrorIs(t, err, domain.ErrTransitionConflict)

	// The fight entry was not disturbed: it completes and the machine keeps working.
	eng.finish(t, 2)
	snap, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeFighting, snap.Mode)
	assert.True(t, snap.FightArmed)

	eng.clock.Advance(10 * time.Second)
	eng.sched.Drain()
	eng.finish(t, 1)

	m, err := eng.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeEnteringFight, m)
}

func TestEngine_PlayInIdleRearmsIdleTimer(t *testing.T) {
	eng := newManualEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	eng.finish(t, 3)

	done, err := eng.Play(ctx, "hit_1")
	require.NoError(t, err)

	snap, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Busy)
	assert.False(t, snap.IdleArmed)

	accepted, err := eng.PointerEnter(ctx)
	require.NoError(t, err)
	assert.False(t, accepted, "ad-hoc playback in flight")

	eng.finish(t, 1)
	select {
	case <-done:
	default:
		t.Fatal("ad-hoc playback did not complete")
	}

	snap, err = eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, snap.Mode)
	assert.True(t, snap.IdleArmed)
	assert.False(t, snap.Busy)
}

func TestEngine_Toggle(t *testing.T) {
	eng := newManualEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	eng.finish(t, 3)

	m, err := eng.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeEnteringFight, m)
}

func TestEngine_RunRequiresOwnLoop(t *testing.T) {
	eng := newManualEngine(t)
	assert.ErrorIs(t, eng.Run(context.Background()), puppet.ErrExternalScheduler)
}

func TestEngine_RunWithBuiltInLoop(t *testing.T) {
	cfg := config.Default()
	cfg.Playback.FrameRate = 200

	eng, err := puppet.New("", puppet.WithLoader(memory.NewLoader(testutils.FixtureClips()...)), puppet.WithConfig(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- eng.Run(ctx) }()

	done, err := eng.Play(ctx, "hit_1", "punch_1")
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sequence did not complete")
	}

	snap, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ClipName("punch_1"), snap.CurrentClip)
	assert.False(t, snap.Busy)

	cancel()
	assert.NoError(t, <-runErr)
}

func TestEngine_StartBeforeRunWaitsForLoop(t *testing.T) {
	cfg := config.Default()
	cfg.Playback.FrameRate = 0
	eng, err := puppet.New("", puppet.WithLoader(memory.NewLoader(testutils.FixtureClips()...)), puppet.WithConfig(cfg))
	require.NoError(t, err)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelStart()
	assert.ErrorIs(t, eng.Start(startCtx), context.DeadlineExceeded)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- eng.Run(ctx) }()

	snap, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Busy, "the queued greeting ran first")

	cancel()
	assert.NoError(t, <-runErr)
}

func TestNew_LoamLibrary(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteLibrary(t, dir, testutils.FixtureClips()...)

	eng, err := puppet.New(dir)
	require.NoError(t, err)

	clips, err := eng.Clips(context.Background())
	require.NoError(t, err)
	assert.Len(t, clips, len(testutils.FixtureClips()))
	assert.NoError(t, eng.Preload(context.Background()))
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Timers.Idle = 0
	_, err := puppet.New("", puppet.WithLoader(memory.NewLoader()), puppet.WithConfig(cfg))
	assert.ErrorContains(t, err, "timers.idle")
}
