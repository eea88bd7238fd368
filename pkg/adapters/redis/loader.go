package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/puppet/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the adapter touches.
const DefaultPrefix = "puppet:"

// Loader implements ports.ClipLoader on Redis.
// Each clip is a JSON document at <prefix>clip:<name>; <prefix>clips indexes the names.
type Loader struct {
	client *backend.Client
	prefix string
}

type Option func(*Loader)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// New creates a loader with its own client.
func New(address, password string, db int, opts ...Option) *Loader {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a loader over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Loader {
	l := &Loader{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Client exposes the underlying client so a Publisher can share it.
func (l *Loader) Client() *backend.Client {
	return l.client
}

func (l *Loader) key(name domain.ClipName) string {
	return l.prefix + "clip:" + string(name)
}

func (l *Loader) indexKey() string {
	return l.prefix + "clips"
}

// Load fetches and decodes a clip.
func (l *Loader) Load(ctx context.Context, name domain.ClipName) (*domain.Clip, error) {
	data, err := l.client.Get(ctx, l.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrClipNotFound)
		}
		return nil, fmt.Errorf("redis get failed for %s: %w", name, err)
	}

	var clip domain.Clip
	if err := json.Unmarshal(data, &clip); err != nil {
		return nil, err
	}
	if clip.Name == "" {
		clip.Name = name
	}
	if clip.Name != name {
		return nil, fmt.Errorf("%w: %s: stored clip is named %q", domain.ErrClipMalformed, name, clip.Name)
	}
	if err := clip.Validate(); err != nil {
		return nil, err
	}
	return &clip, nil
}

// List returns the indexed clip names, sorted.
func (l *Loader) List(ctx context.Context) ([]domain.ClipName, error) {
	members, err := l.client.SMembers(ctx, l.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers failed: %w", err)
	}
	sort.Strings(members)
	names := make([]domain.ClipName, len(members))
	for i, m := range members {
		names[i] = domain.ClipName(m)
	}
	return names, nil
}

// Put stores a clip and indexes its name atomically.
func (l *Loader) Put(ctx context.Context, clip domain.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(clip)
	if err != nil {
		return fmt.Errorf("failed to marshal clip %s: %w", clip.Name, err)
	}

	pipe := l.client.TxPipeline()
	pipe.Set(ctx, l.key(clip.Name), data, 0)
	pipe.SAdd(ctx, l.indexKey(), string(clip.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis put failed for %s: %w", clip.Name, err)
	}
	return nil
}

// Delete removes a clip and its index entry.
func (l *Loader) Delete(ctx context.Context, name domain.ClipName) error {
	pipe := l.client.TxPipeline()
	pipe.Del(ctx, l.key(name))
	pipe.SRem(ctx, l.indexKey(), string(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete failed for %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying client.
func (l *Loader) Close() error {
	return l.client.Close()
}
