package sequencer

import (
	"fmt"
	"strings"
	"time"
)

// DefaultFade is the cross-fade duration used when none is configured.
const DefaultFade = 200 * time.Millisecond

// Transition selects how a clip replaces the previous one.
type Transition int

const (
	// CrossFade blends the outgoing actions out while the new clip fades in.
	CrossFade Transition = iota
	// Cut stops the previous clip instantly.
	Cut
)

func (t Transition) String() string {
	switch t {
	case CrossFade:
		return "crossfade"
	case Cut:
		return "cut"
	default:
		return fmt.Sprintf("Transition(%d)", int(t))
	}
}

// ParseTransition accepts "crossfade" (or "cross-fade", "fade") and "cut".
func ParseTransition(s string) (Transition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crossfade", "cross-fade", "cross_fade", "fade", "":
		return CrossFade, nil
	case "cut", "hard", "hard-cut":
		return Cut, nil
	default:
		return CrossFade, fmt.Errorf("unknown transition %q", s)
	}
}

// PlayOption overrides the deployment transition for one Play call.
type PlayOption func(*run)

// WithTransition sets the transition style for every clip of this call.
func WithTransition(t Transition) PlayOption {
	return func(r *run) {
		r.transition = t
	}
}

// WithFade sets the cross-fade duration for this call.
func WithFade(d time.Duration) PlayOption {
	return func(r *run) {
		r.fade = d
	}
}
