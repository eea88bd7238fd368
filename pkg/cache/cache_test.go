package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	mu    sync.Mutex
	clips map[domain.ClipName]*domain.Clip
	fail  map[domain.ClipName]int // remaining transient failures
	gate  chan struct{}
	calls atomic.Int32
}

func newStub(names ...string) *stubLoader {
	s := &stubLoader{
		clips: make(map[domain.ClipName]*domain.Clip),
		fail:  make(map[domain.ClipName]int),
	}
	for _, n := range names {
		s.clips[domain.ClipName(n)] = &domain.Clip{Name: domain.ClipName(n), Duration: time.Second}
	}
	return s
}

func (s *stubLoader) Load(ctx context.Context, name domain.ClipName) (*domain.Clip, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[name] > 0 {
		s.fail[name]--
		return nil, errors.New("transient storage failure")
	}
	clip, ok := s.clips[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrClipNotFound)
	}
	// Fresh copy per load so identity checks prove memoization.
	cp := *clip
	return &cp, nil
}

func (s *stubLoader) List(ctx context.Context) ([]domain.ClipName, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ClipName
	for n := range s.clips {
		out = append(out, n)
	}
	return out, nil
}

func TestResolve_ReturnsIdenticalClip(t *testing.T) {
	loader := newStub("stretch")
	c := New(loader)
	ctx := context.Background()

	first, err := c.Resolve(ctx, "stretch")
	require.NoError(t, err)
	second, err := c.Resolve(ctx, "stretch")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.calls.Load())
	assert.Equal(t, 1, c.Loads("stretch"))

	peeked, ok := c.Peek("stretch")
	assert.True(t, ok)
	assert.Same(t, first, peeked)
}

func TestResolve_ConcurrentCallersShareOneLoad(t *testing.T) {
	loader := newStub("ko")
	loader.gate = make(chan struct{})
	c := New(loader)

	const callers = 16
	results := make([]*domain.Clip, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clip, err := c.Resolve(context.Background(), "ko")
			assert.NoError(t, err)
			results[i] = clip
		}(i)
	}

	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(loader.gate)
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestResolve_FailureIsNotCached(t *testing.T) {
	loader := newStub("point")
	loader.fail["point"] = 1
	c := New(loader)
	ctx := context.Background()

	_, err := c.Resolve(ctx, "point")
	require.Error(t, err)
	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, domain.ClipName("point"), loadErr.Name)
	assert.Equal(t, 0, c.Len())

	clip, err := c.Resolve(ctx, "point")
	require.NoError(t, err)
	assert.Equal(t, domain.ClipName("point"), clip.Name)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		loader  func() *stubLoader
		opts    []Option
		wantErr error
	}{
		{
			name:    "missing resource",
			loader:  func() *stubLoader { return newStub() },
			wantErr: domain.ErrClipNotFound,
		},
		{
			name: "malformed resource",
			loader: func() *stubLoader {
				s := newStub()
				s.clips["broken"] = &domain.Clip{Name: "broken"}
				return s
			},
			wantErr: domain.ErrClipMalformed,
		},
		{
			name: "loader ignores context",
			loader: func() *stubLoader {
				s := newStub("broken")
				s.gate = make(chan struct{}) // never closed
				return s
			},
			opts:    []Option{WithLoadTimeout(20 * time.Millisecond)},
			wantErr: domain.ErrLoadTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.loader(), tt.opts...)
			_, err := c.Resolve(context.Background(), "broken")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var loadErr *domain.LoadError
			assert.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestResolve_CallerCancelDoesNotAbortSharedLoad(t *testing.T) {
	loader := newStub("fight_idle")
	loader.gate = make(chan struct{})
	c := New(loader)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Resolve(ctx, "fight_idle")
	assert.ErrorIs(t, err, context.Canceled)

	close(loader.gate)
	clip, err := c.Resolve(context.Background(), "fight_idle")
	require.NoError(t, err)
	assert.Equal(t, domain.ClipName("fight_idle"), clip.Name)
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestPreload(t *testing.T) {
	loader := newStub("stretch", "point")
	var loads []domain.ClipName
	c := New(loader, WithLifecycleHooks(domain.LifecycleHooks{
		OnClipLoad: func(_ context.Context, e *domain.ClipEvent) { loads = append(loads, e.Clip) },
	}))

	err := c.Preload(context.Background(), "stretch", "point", "missing", "stretch")
	assert.ErrorIs(t, err, domain.ErrClipNotFound)
	assert.Equal(t, []domain.ClipName{"point", "stretch"}, c.Names())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []domain.ClipName{"stretch", "point", "missing"}, loads)
}
