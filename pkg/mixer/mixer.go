// Package mixer implements the single playback channel: clip actions with weights,
// linear cross-fades and clamp-on-finish.
//
// A Mixer is not safe for concurrent use. The engine drives it from its loop.
package mixer

import (
	"fmt"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
)

type action struct {
	id       domain.ActionID
	clip     *domain.Clip
	time     time.Duration
	finished bool

	weight    float64
	fadeFrom  float64
	fadeTo    float64
	fadeFor   time.Duration
	fadeSpent time.Duration
	fadingOut bool
}

// Mixer plays each clip once and holds its last frame.
type Mixer struct {
	next       domain.ActionID
	actions    []*action
	onFinished []func(domain.ActionID)
}

// New creates an empty mixer.
func New() *Mixer {
	return &Mixer{}
}

// OnFinished registers fn for every finished event.
func (m *Mixer) OnFinished(fn func(domain.ActionID)) {
	m.onFinished = append(m.onFinished, fn)
}

// Cut stops everything and plays clip at full weight.
func (m *Mixer) Cut(clip *domain.Clip) domain.ActionID {
	a := m.newAction(clip)
	a.weight = 1
	m.actions = []*action{a}
	return a.id
}

// CrossFade blends every running action out and clip in over d.
func (m *Mixer) CrossFade(clip *domain.Clip, d time.Duration) (domain.ActionID, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: non-positive fade %s", domain.ErrFadeFailed, d)
	}
	if clip == nil || clip.Duration < d {
		return 0, fmt.Errorf("%w: clip shorter than fade %s", domain.ErrFadeFailed, d)
	}

	for _, a := range m.actions {
		a.fadeFrom = a.weight
		a.fadeTo = 0
		a.fadeFor = d
		a.fadeSpent = 0
		a.fadingOut = true
	}

	in := m.newAction(clip)
	in.fadeFrom = 0
	in.fadeTo = 1
	in.fadeFor = d
	m.actions = append(m.actions, in)
	return in.id, nil
}

func (m *Mixer) newAction(clip *domain.Clip) *action {
	m.next++
	return &action{id: m.next, clip: clip}
}

// Update advances every action by dt and emits finished events afterwards.
func (m *Mixer) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}

	var finished []domain.ActionID
	kept := m.actions[:0]
	for _, a := range m.actions {
		if !a.finished {
			a.time += dt
			if a.time >= a.clip.Duration {
				a.time = a.clip.Duration
				a.finished = true
				finished = append(finished, a.id)
			}
		}

		if a.fadeFor > 0 {
			a.fadeSpent += dt
			progress := float64(a.fadeSpent) / float64(a.fadeFor)
			if progress >= 1 {
				a.weight = a.fadeTo
				a.fadeFor = 0
			} else {
				a.weight = a.fadeFrom + (a.fadeTo-a.fadeFrom)*progress
			}
		}

		if a.fadingOut && a.fadeFor == 0 {
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(m.actions); i++ {
		m.actions[i] = nil
	}
	m.actions = kept

	// Callbacks may install new actions.
	for _, id := range finished {
		for _, fn := range m.onFinished {
			fn(id)
		}
	}
}

// Pose returns the current layers.
func (m *Mixer) Pose() domain.Pose {
	layers := make([]domain.Layer, 0, len(m.actions))
	for _, a := range m.actions {
		layers = append(layers, domain.Layer{
			Action:   a.id,
			Clip:     a.clip.Name,
			Time:     a.time,
			Weight:   a.weight,
			Finished: a.finished,
		})
	}
	return domain.Pose{Layers: layers}
}

// Len returns the number of live actions.
func (m *Mixer) Len() int {
	return len(m.actions)
}
