package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/puppet/pkg/domain"
)

// Loader implements ports.ClipLoader using an in-memory map.
type Loader struct {
	mu    sync.RWMutex
	clips map[domain.ClipName]domain.Clip
}

// NewLoader creates a loader serving the given clips.
func NewLoader(clips ...domain.Clip) *Loader {
	l := &Loader{clips: make(map[domain.ClipName]domain.Clip, len(clips))}
	for _, c := range clips {
		l.clips[c.Name] = c
	}
	return l
}

// NewFromJSON creates a loader from raw JSON clip documents keyed by name.
// Documents are decoded lazily, so a malformed entry only fails its own Load.
func NewFromJSON(data map[string]string) *Loader {
	l := NewLoader()
	for name, raw := range data {
		var c domain.Clip
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			// Keep the name so Load reports malformed rather than not found.
			c = domain.Clip{}
		}
		if c.Name == "" {
			c.Name = domain.ClipName(name)
		}
		l.clips[domain.ClipName(name)] = c
	}
	return l
}

// Put adds or replaces a clip.
func (l *Loader) Put(c domain.Clip) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clips[c.Name] = c
}

// Load returns a fresh copy of the named clip.
func (l *Loader) Load(ctx context.Context, name domain.ClipName) (*domain.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	c, ok := l.clips[name]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrClipNotFound)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all available clip names.
func (l *Loader) List(ctx context.Context) ([]domain.ClipName, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]domain.ClipName, 0, len(l.clips))
	for n := range l.clips {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] }) // Deterministic order
	return names, nil
}
