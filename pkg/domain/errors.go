package domain

import (
	"errors"
	"fmt"
)

// ErrClipNotFound is returned when the loader has no resource for a clip name.
var ErrClipNotFound = errors.New("clip not found")

// ErrClipMalformed is returned when a resource exists but cannot be decoded into a playable clip.
var ErrClipMalformed = errors.New("clip malformed")

// ErrLoadTimeout is returned when a clip load exceeds the configured bound.
var ErrLoadTimeout = errors.New("clip load timed out")

// ErrTransitionConflict is reported when a trigger arrives while a sequence is in flight.
// The state machine ignores such triggers; adapters use this value to explain the rejection.
var ErrTransitionConflict = errors.New("transition conflict: sequence in flight")

// ErrFadeFailed is returned by a playback channel that cannot set up a cross-fade.
var ErrFadeFailed = errors.New("cross-fade failed")

// LoadError wraps any failure to resolve a clip. It is never cached, so a later
// request for the same name re-attempts the load.
type LoadError struct {
	Name ClipName
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load clip %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
