// Package sequencer plays ordered clip lists back-to-back on a single playback channel.
package sequencer

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/ports"
)

// Resolver is the part of the clip cache the sequencer needs.
type Resolver interface {
	Peek(name domain.ClipName) (*domain.Clip, bool)
	Resolve(ctx context.Context, name domain.ClipName) (*domain.Clip, error)
}

// run is the cancellable token of one Play call. Only the run stored in
// Sequencer.run may touch the channel; every other run is stale.
type run struct {
	token      uint64
	names      []domain.ClipName
	idx        int
	onComplete func()
	action     domain.ActionID
	transition Transition
	fade       time.Duration
}

// Sequencer owns the playback channel. Every method must be called from the scheduler's thread.
type Sequencer struct {
	clips   Resolver
	channel ports.PlaybackChannel
	sched   ports.Scheduler
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	transition Transition
	fade       time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	run     *run
	tokens  uint64
	current domain.ClipName
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithDefaultTransition sets the deployment-wide transition style.
func WithDefaultTransition(t Transition) Option {
	return func(s *Sequencer) {
		s.transition = t
	}
}

// WithDefaultFade sets the deployment-wide cross-fade duration.
func WithDefaultFade(d time.Duration) Option {
	return func(s *Sequencer) {
		s.fade = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers clip and sequence hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sequencer) {
		s.hooks = hooks
	}
}

// New creates a sequencer and subscribes it to the channel's finished events.
func New(clips Resolver, channel ports.PlaybackChannel, sched ports.Scheduler, opts ...Option) *Sequencer {
	s := &Sequencer{
		clips:      clips,
		channel:    channel,
		sched:      sched,
		transition: CrossFade,
		fade:       DefaultFade,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	channel.OnFinished(s.handleFinished)
	return s
}

// Play starts names on the channel, preempting any sequence in flight.
// A preempted sequence never calls its onComplete. An empty list calls onComplete
// synchronously and leaves the channel alone.
func (s *Sequencer) Play(names []domain.ClipName, onComplete func(), opts ...PlayOption) {
	if prev := s.run; prev != nil {
		s.run = nil
		s.logger.Debug("sequence preempted", "run", prev.token, "remaining", prev.names[max(prev.idx, 0):])
		if s.hooks.OnSequencePreempt != nil {
			s.hooks.OnSequencePreempt(s.ctx, s.sequenceEvent(domain.EventSequencePreempt, prev))
		}
	}

	if len(names) == 0 {
		if onComplete != nil {
			onComplete()
		}
		return
	}

	s.tokens++
	r := &run{
		token:      s.tokens,
		names:      append([]domain.ClipName(nil), names...),
		idx:        -1,
		onComplete: onComplete,
		transition: s.transition,
		fade:       s.fade,
	}
	for _, opt := range opts {
		opt(r)
	}
	s.run = r

	if s.hooks.OnSequenceStart != nil {
		s.hooks.OnSequenceStart(s.ctx, s.sequenceEvent(domain.EventSequenceStart, r))
	}
	s.advance(r)
}

// Busy reports whether a sequence is in flight.
func (s *Sequencer) Busy() bool {
	return s.run != nil
}

// Current returns the clip most recently installed on the channel.
func (s *Sequencer) Current() domain.ClipName {
	return s.current
}

// Close abandons the sequence in flight and cancels pending loads.
func (s *Sequencer) Close() {
	s.run = nil
	s.cancel()
}

func (s *Sequencer) advance(r *run) {
	r.idx++
	if r.idx >= len(r.names) {
		s.complete(r)
		return
	}
	name := r.names[r.idx]
	r.action = 0

	if clip, ok := s.clips.Peek(name); ok {
		s.install(r, clip)
		return
	}

	// The load is the only suspension point; its result re-enters through the scheduler.
	go func() {
		clip, err := s.clips.Resolve(s.ctx, name)
		s.sched.Post(func() {
			if s.run != r {
				return
			}
			if err != nil {
				s.skip(r, name, err)
				return
			}
			s.install(r, clip)
		})
	}()
}

func (s *Sequencer) skip(r *run, name domain.ClipName, err error) {
	s.logger.Warn("clip skipped", "clip", name, "run", r.token, "err", err)
	if s.hooks.OnClipError != nil {
		s.hooks.OnClipError(s.ctx, &domain.ClipEvent{
			EventBase: domain.NewEventBase(domain.EventClipError),
			Clip:      name,
			Err:       err.Error(),
		})
	}
	s.advance(r)
}

func (s *Sequencer) install(r *run, clip *domain.Clip) {
	var id domain.ActionID
	if r.transition == CrossFade {
		var err error
		id, err = s.channel.CrossFade(clip, r.fade)
		if err != nil {
			s.logger.Warn("cross-fade failed, cutting", "clip", clip.Name, "err", err)
			if s.hooks.OnFadeFallback != nil {
				s.hooks.OnFadeFallback(s.ctx, &domain.ClipEvent{
					EventBase: domain.NewEventBase(domain.EventFadeFallback),
					Clip:      clip.Name,
					Err:       err.Error(),
				})
			}
			id = s.channel.Cut(clip)
		}
	} else {
		id = s.channel.Cut(clip)
	}

	r.action = id
	s.current = clip.Name
	s.logger.Debug("clip started", "clip", clip.Name, "action", id, "run", r.token)
	if s.hooks.OnClipStart != nil {
		s.hooks.OnClipStart(s.ctx, &domain.ClipEvent{
			EventBase: domain.NewEventBase(domain.EventClipStart),
			Clip:      clip.Name,
			Action:    id,
			Duration:  clip.Duration,
		})
	}
}

func (s *Sequencer) handleFinished(id domain.ActionID) {
	r := s.run
	if r == nil || r.action != id {
		return
	}
	s.advance(r)
}

func (s *Sequencer) complete(r *run) {
	s.run = nil
	if s.hooks.OnSequenceComplete != nil {
		s.hooks.OnSequenceComplete(s.ctx, s.sequenceEvent(domain.EventSequenceComplete, r))
	}
	if r.onComplete != nil {
		r.onComplete()
	}
}

func (s *Sequencer) sequenceEvent(t domain.EventType, r *run) *domain.SequenceEvent {
	return &domain.SequenceEvent{
		EventBase: domain.NewEventBase(t),
		Run:       r.token,
		Clips:     r.names,
	}
}
