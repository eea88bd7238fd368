package domain

import "time"

// ActionID identifies one playback of a clip on a channel.
// Every play of a clip gets a fresh id, even when the clip is the same.
type ActionID uint64

// Layer is one clip instance contributing to the pose.
type Layer struct {
	Action   ActionID      `json:"action"`
	Clip     ClipName      `json:"clip"`
	Time     time.Duration `json:"time"`
	Weight   float64       `json:"weight"`
	Finished bool          `json:"finished"`
}

// Pose is the read-only state of the playback channel for one frame.
type Pose struct {
	Layers []Layer `json:"layers"`
}

// Dominant returns the layer with the highest weight, or false if the channel is empty.
func (p Pose) Dominant() (Layer, bool) {
	var best Layer
	found := false
	for _, l := range p.Layers {
		if !found || l.Weight > best.Weight {
			best = l
			found = true
		}
	}
	return best, found
}

// Snapshot is what render loops and UI controls read about the avatar.
type Snapshot struct {
	Mode        Mode     `json:"mode"`
	HitCount    int      `json:"hit_count"`
	Busy        bool     `json:"busy"`
	CurrentClip ClipName `json:"current_clip,omitempty"`
	IdleArmed   bool     `json:"idle_timer_armed"`
	FightArmed  bool     `json:"fight_timer_armed"`
	Pose        Pose     `json:"pose"`
}
