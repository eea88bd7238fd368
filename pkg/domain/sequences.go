package domain

// Sequences is the catalog of clip lists the mode state machine dispatches.
type Sequences struct {
	Greeting   []ClipName `json:"greeting" yaml:"greeting" mapstructure:"greeting"`
	IdleFiller []ClipName `json:"idle_filler" yaml:"idle_filler" mapstructure:"idle_filler"`
	EnterFight []ClipName `json:"enter_fight" yaml:"enter_fight" mapstructure:"enter_fight"`
	FightIdle  []ClipName `json:"fight_idle" yaml:"fight_idle" mapstructure:"fight_idle"`
	LightHit   []ClipName `json:"light_hit" yaml:"light_hit" mapstructure:"light_hit"`
	HeavyHit   []ClipName `json:"heavy_hit" yaml:"heavy_hit" mapstructure:"heavy_hit"`
	Knockout   []ClipName `json:"knockout" yaml:"knockout" mapstructure:"knockout"`
	GetUp      []ClipName `json:"get_up" yaml:"get_up" mapstructure:"get_up"`
	ExitFight  []ClipName `json:"exit_fight" yaml:"exit_fight" mapstructure:"exit_fight"`
}

// DefaultSequences returns the clip lists of the stock avatar.
func DefaultSequences() Sequences {
	return Sequences{
		Greeting:   Names("standing_up", "stretch", "point"),
		IdleFiller: Names("stretch", "point"),
		EnterFight: Names("standing_to_fight"),
		FightIdle:  Names("fight_idle"),
		LightHit:   Names("hit_1", "punch_1"),
		HeavyHit:   Names("hit_2", "punch_2"),
		Knockout:   Names("ko"),
		GetUp:      Names("getting_up"),
		ExitFight:  Names("fight_to_standing"),
	}
}

// Named returns every sequence keyed by its configuration name, in a stable order.
func (s Sequences) Named() []NamedSequence {
	return []NamedSequence{
		{"greeting", s.Greeting},
		{"idle_filler", s.IdleFiller},
		{"enter_fight", s.EnterFight},
		{"fight_idle", s.FightIdle},
		{"light_hit", s.LightHit},
		{"heavy_hit", s.HeavyHit},
		{"knockout", s.Knockout},
		{"get_up", s.GetUp},
		{"exit_fight", s.ExitFight},
	}
}

// Clips returns the de-duplicated union of every clip referenced, in first-seen order.
func (s Sequences) Clips() []ClipName {
	seen := make(map[ClipName]bool)
	var out []ClipName
	for _, seq := range s.Named() {
		for _, name := range seq.Clips {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// NamedSequence pairs a catalog key with its clip list.
type NamedSequence struct {
	Name  string
	Clips []ClipName
}
