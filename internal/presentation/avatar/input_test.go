package avatar

import (
	"image"
	"testing"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTriggers(t *testing.T) {
	model := image.Rect(100, 100, 200, 200)
	inside := image.Pt(150, 150)
	outside := image.Pt(10, 10)

	tests := []struct {
		name  string
		frame Frame
		want  []domain.Trigger
	}{
		{"no input", Frame{Cursor: inside}, nil},
		{"move outside", Frame{Cursor: outside, Moved: true}, []domain.Trigger{domain.TriggerActivity}},
		{"move over model", Frame{Cursor: inside, Moved: true}, []domain.Trigger{domain.TriggerActivity, domain.TriggerPointerEnter}},
		{"click over model", Frame{Cursor: inside, Clicked: true}, []domain.Trigger{domain.TriggerActivity, domain.TriggerPointerEnter, domain.TriggerClick}},
		{"click outside", Frame{Cursor: outside, Clicked: true}, []domain.Trigger{domain.TriggerActivity}},
		{"toggle key", Frame{Cursor: outside, Keys: true, Toggle: true}, []domain.Trigger{domain.TriggerActivity, domain.TriggerToggle}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Triggers(tt.frame, model))
		})
	}
}

func TestTint(t *testing.T) {
	fightIdle := domain.Names("fight_idle")

	assert.Equal(t, tintIdle, Tint(domain.Snapshot{Mode: domain.ModeIdle, Busy: true, CurrentClip: "stretch"}, fightIdle))
	assert.Equal(t, tintTransition, Tint(domain.Snapshot{Mode: domain.ModeEnteringFight}, fightIdle))
	assert.Equal(t, tintFight, Tint(domain.Snapshot{Mode: domain.ModeFighting, Busy: true, CurrentClip: "fight_idle", HitCount: 1}, fightIdle))
	assert.Equal(t, tintHit, Tint(domain.Snapshot{Mode: domain.ModeFighting, Busy: true, CurrentClip: "hit_1", HitCount: 1}, fightIdle))
}
