package ports

import (
	"context"
	"time"
)

// Timer is a handle on a scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports false if it already fired or was stopped.
	Stop() bool
}

// Clock schedules one-shot callbacks. Callbacks may run on any goroutine.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Scheduler serializes work onto the engine's logical thread.
type Scheduler interface {
	// Post enqueues fn. It never blocks and never runs fn inline.
	Post(fn func())

	// Do runs fn on the logical thread and waits for it to return.
	Do(ctx context.Context, fn func()) error
}
