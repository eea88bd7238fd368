package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/observability"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ProfileFor returns the color profile for w. Anything but a terminal gets plain ASCII.
func ProfileFor(w io.Writer) termenv.Profile {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

var eventColors = map[domain.EventType]string{
	domain.EventClipStart:        "#38bdf8",
	domain.EventClipError:        "#f87171",
	domain.EventFadeFallback:     "#fbbf24",
	domain.EventSequenceComplete: "#4ade80",
	domain.EventSequencePreempt:  "#fb923c",
	domain.EventModeChange:       "#c084fc",
	domain.EventHit:              "#f472b6",
	domain.EventTimerFire:        "#a3a3a3",
}

// EventPrinter writes one line per lifecycle event.
type EventPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	profile termenv.Profile
	start   time.Time
}

// NewEventPrinter creates a printer writing to w, colored when w is a terminal.
func NewEventPrinter(w io.Writer) *EventPrinter {
	return &EventPrinter{w: w, profile: ProfileFor(w), start: time.Now()}
}

// Print writes e.
func (p *EventPrinter) Print(e domain.Event) {
	line := Describe(e)
	if line == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.profile.String(fmt.Sprintf("%7.2fs", time.Since(p.start).Seconds())).Faint()
	kind := p.profile.String(fmt.Sprintf("%-17s", e.Kind()))
	if c, ok := eventColors[e.Kind()]; ok {
		kind = kind.Foreground(p.profile.Color(c))
	}
	fmt.Fprintf(p.w, "%s %s %s\n", elapsed, kind, line)
}

// Hooks prints every lifecycle event.
func (p *EventPrinter) Hooks() domain.LifecycleHooks {
	return observability.EventHooks(func(_ context.Context, e domain.Event) { p.Print(e) })
}

// Describe renders the payload of e as a short human readable string.
func Describe(e domain.Event) string {
	switch ev := e.(type) {
	case *domain.ClipEvent:
		switch {
		case ev.Err != "":
			return fmt.Sprintf("%s: %s", ev.Clip, ev.Err)
		case ev.Kind() == domain.EventClipLoad:
			return fmt.Sprintf("%s loaded in %s", ev.Clip, ev.Duration.Round(time.Microsecond))
		case ev.Duration > 0:
			return fmt.Sprintf("%s (%s)", ev.Clip, ev.Duration)
		}
		return string(ev.Clip)
	case *domain.SequenceEvent:
		return fmt.Sprintf("#%d [%s]", ev.Run, joinClips(ev.Clips))
	case *domain.ModeEvent:
		return fmt.Sprintf("%s -> %s", ev.From, ev.To)
	case *domain.HitEvent:
		return fmt.Sprintf("hit %d [%s]", ev.Count, joinClips(ev.Clips))
	case *domain.TimerEvent:
		if ev.Accepted {
			return ev.Timer + " expired"
		}
		return ev.Timer + " expired (ignored)"
	}
	return ""
}

func joinClips(names []domain.ClipName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
