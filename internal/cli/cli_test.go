package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/puppet/internal/testutils"
	"github.com/aretw0/puppet/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/puppet/pkg/adapters/redis"
	"github.com/aretw0/puppet/pkg/config"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults with dir override", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := LoadConfig(Options{Dir: dir, LogLevel: "warn"})
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.Clips.Dir)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, 10*time.Second, cfg.Timers.Idle)
	})

	t.Run("Config file found in dir", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("timers:\n  idle: 3s\n"), 0644)
		require.NoError(t, err)

		cfg, err := LoadConfig(Options{Dir: dir, Debug: true})
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Timers.Idle)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Explicit config path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "avatar.yaml")
		require.NoError(t, os.WriteFile(path, []byte("playback:\n  transition: cut\n"), 0644))

		cfg, err := LoadConfig(Options{ConfigPath: path})
		require.NoError(t, err)
		assert.Equal(t, "cut", cfg.Playback.Transition)
	})

	t.Run("Invalid override", func(t *testing.T) {
		_, err := LoadConfig(Options{Dir: t.TempDir(), LogLevel: "loud"})
		assert.ErrorContains(t, err, "invalid configuration")
	})
}

func TestValidate(t *testing.T) {
	clips := testutils.FixtureClips()
	loader := memory.NewLoader(append(clips, domain.Clip{Name: "wave", Duration: time.Second})...)

	report, err := Validate(context.Background(), loader, domain.DefaultSequences())
	require.NoError(t, err)
	assert.Len(t, report.Referenced, len(clips))
	assert.Equal(t, domain.Names("wave"), report.Unused)

	seqs := domain.DefaultSequences()
	seqs.Knockout = domain.Names("ko", "ragdoll")
	_, err = Validate(context.Background(), loader, seqs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrClipNotFound)
	assert.ErrorContains(t, err, "ragdoll")
}

func TestImport(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteLibrary(t, dir, testutils.FixtureClips()...)

	mr := miniredis.RunT(t)
	dst := redisAdapter.New(mr.Addr(), "", 0)
	defer dst.Close()

	n, err := Import(context.Background(), dir, dst)
	require.NoError(t, err)
	assert.Equal(t, len(testutils.FixtureClips()), n)

	names, err := dst.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, n)

	clip, err := dst.Load(context.Background(), "ko")
	require.NoError(t, err)
	assert.Equal(t, testutils.ClipLength, clip.Duration)
}

func TestPlay(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteLibrary(t, dir, testutils.FixtureClips()...)

	cfg, err := LoadConfig(Options{Dir: dir})
	require.NoError(t, err)
	cfg.Playback.FrameRate = 200

	var started []domain.ClipName
	stack, err := NewStack(cfg, CreateLogger(cfg), domain.LifecycleHooks{
		OnClipStart: func(_ context.Context, e *domain.ClipEvent) { started = append(started, e.Clip) },
	})
	require.NoError(t, err)
	defer stack.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, Play(ctx, stack, nil))

	assert.Equal(t, domain.Names("standing_up", "stretch", "point"), started)
	series, err := testutil.GatherAndCount(stack.Registry, "puppet_clip_starts_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series)
}

func TestPlay_RequiresFrameRate(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	cfg, err := LoadConfig(Options{Dir: dir})
	require.NoError(t, err)
	cfg.Playback.FrameRate = 0

	stack, err := NewStack(cfg, CreateLogger(cfg))
	require.NoError(t, err)
	assert.ErrorContains(t, Play(context.Background(), stack, nil), "frame_rate")
}
