// Package avatar maps viewer input to engine triggers and engine state to colors.
package avatar

import (
	"image"
	"image/color"

	"github.com/aretw0/puppet/pkg/domain"
)

// Frame is the input sampled during one tick.
type Frame struct {
	Cursor  image.Point
	Moved   bool
	Clicked bool
	// Keys reports any key or touch press this tick, the toggle key included.
	Keys   bool
	Toggle bool
}

// Triggers maps one frame of input to engine triggers, in dispatch order.
// Any input counts as activity; moving or clicking over the model counts as pointer-enter.
func Triggers(f Frame, model image.Rectangle) []domain.Trigger {
	var out []domain.Trigger
	if f.Moved || f.Clicked || f.Keys {
		out = append(out, domain.TriggerActivity)
	}
	over := f.Cursor.In(model)
	if over && (f.Moved || f.Clicked) {
		out = append(out, domain.TriggerPointerEnter)
	}
	if over && f.Clicked {
		out = append(out, domain.TriggerClick)
	}
	if f.Toggle {
		out = append(out, domain.TriggerToggle)
	}
	return out
}

var (
	tintIdle       = color.RGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
	tintTransition = color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff}
	tintFight      = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	tintHit        = color.RGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff}
)

// Tint is the model color for a snapshot. Fight states read as red, hit reactions
// (anything but the fight_idle clips) as amber.
func Tint(s domain.Snapshot, fightIdle []domain.ClipName) color.RGBA {
	switch s.Mode {
	case domain.ModeEnteringFight, domain.ModeExitingFight:
		return tintTransition
	case domain.ModeFighting:
		if s.Busy && s.HitCount > 0 && s.CurrentClip != "" && !contains(fightIdle, s.CurrentClip) {
			return tintHit
		}
		return tintFight
	}
	return tintIdle
}

func contains(list []domain.ClipName, name domain.ClipName) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
