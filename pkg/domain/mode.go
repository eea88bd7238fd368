package domain

import (
	"fmt"
	"strings"
)

// Mode is the interaction state of the avatar.
type Mode int

const (
	// ModeIdle is the initial state: greeting, idle fillers, waiting for a fight trigger.
	ModeIdle Mode = iota
	// ModeEnteringFight plays the stand-to-fight transition.
	ModeEnteringFight
	// ModeFighting accepts hits and counts them.
	ModeFighting
	// ModeExitingFight plays the fight-to-standing transition.
	ModeExitingFight
)

var modeNames = [...]string{
	ModeIdle:          "idle",
	ModeEnteringFight: "entering_fight",
	ModeFighting:      "fighting",
	ModeExitingFight:  "exiting_fight",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// InFight reports whether the avatar is anywhere in the fight interaction.
func (m Mode) InFight() bool {
	return m != ModeIdle
}

// MarshalText renders the mode by name for JSON and YAML encoders.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", string(text))
}

// Trigger is a discrete input event delivered by an input surface.
type Trigger string

const (
	// TriggerPointerEnter fires when the pointer hits the model geometry.
	TriggerPointerEnter Trigger = "pointer_enter"
	// TriggerClick fires on a click on the model.
	TriggerClick Trigger = "click"
	// TriggerActivity is any qualifying input (pointer move, click, key press, touch).
	TriggerActivity Trigger = "activity"
	// TriggerToggle comes from a UI mode-toggle control.
	TriggerToggle Trigger = "toggle"
)

// Triggers lists every known trigger.
var Triggers = []Trigger{TriggerPointerEnter, TriggerClick, TriggerActivity, TriggerToggle}

// ParseTrigger accepts both underscore and dash spellings ("pointer-enter").
func ParseTrigger(s string) (Trigger, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, t := range Triggers {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trigger %q", s)
}
