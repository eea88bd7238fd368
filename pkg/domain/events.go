package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventClipLoad         EventType = "clip_load"
	EventClipStart        EventType = "clip_start"
	EventClipError        EventType = "clip_error"
	EventFadeFallback     EventType = "fade_fallback"
	EventSequenceStart    EventType = "sequence_start"
	EventSequenceComplete EventType = "sequence_complete"
	EventSequencePreempt  EventType = "sequence_preempt"
	EventModeChange       EventType = "mode_change"
	EventHit              EventType = "hit"
	EventTimerFire        EventType = "timer_fire"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// Kind returns the event type. It makes every event satisfy Event.
func (b EventBase) Kind() EventType {
	return b.Type
}

// Event is any lifecycle event.
type Event interface {
	Kind() EventType
}

// ClipEvent covers loads, starts and per-clip failures.
type ClipEvent struct {
	EventBase
	Clip     ClipName      `json:"clip"`
	Action   ActionID      `json:"action,omitempty"`
	Duration time.Duration `json:"duration,omitempty"` // load latency for clip_load, clip length for clip_start
	Err      string        `json:"err,omitempty"`
}

// SequenceEvent represents the start, completion or preemption of a playback request.
type SequenceEvent struct {
	EventBase
	Run   uint64     `json:"run"`
	Clips []ClipName `json:"clips"`
}

// ModeEvent is emitted on every interaction mode transition.
type ModeEvent struct {
	EventBase
	From Mode `json:"from"`
	To   Mode `json:"to"`
}

// HitEvent is emitted for every accepted hit.
type HitEvent struct {
	EventBase
	Count int        `json:"count"`
	Clips []ClipName `json:"clips"`
}

// TimerEvent is emitted when an inactivity watchdog expires.
type TimerEvent struct {
	EventBase
	Timer    string `json:"timer"`
	Accepted bool   `json:"accepted"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnClipLoad         func(context.Context, *ClipEvent)
	OnClipStart        func(context.Context, *ClipEvent)
	OnClipError        func(context.Context, *ClipEvent)
	OnFadeFallback     func(context.Context, *ClipEvent)
	OnSequenceStart    func(context.Context, *SequenceEvent)
	OnSequenceComplete func(context.Context, *SequenceEvent)
	OnSequencePreempt  func(context.Context, *SequenceEvent)
	OnModeChange       func(context.Context, *ModeEvent)
	OnHit              func(context.Context, *HitEvent)
	OnTimerFire        func(context.Context, *TimerEvent)
}

// NewEventBase stamps an event of the given type with the current time.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}
