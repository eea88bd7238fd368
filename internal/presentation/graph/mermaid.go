package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/mode"
)

// GraphOverlay contains live state to highlight on the diagram.
type GraphOverlay struct {
	Current  domain.Mode
	HitCount int
}

// GenerateMermaid produces a Mermaid flowchart of the interaction modes.
// Edges are labelled with the trigger and the clips played on the way:
//   - Idle: ((Circle))
//   - Transitional modes: ([Stadium])
//   - Fighting: [Rectangle]
//
// Entry edges only appear for the triggers enabled in settings.
func GenerateMermaid(settings mode.Settings, overlay *GraphOverlay) string {
	seq := settings.Sequences
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, m := range []domain.Mode{domain.ModeIdle, domain.ModeEnteringFight, domain.ModeFighting, domain.ModeExitingFight} {
		opener, closer := "[", "]"
		switch m {
		case domain.ModeIdle:
			opener, closer = "((", "))"
		case domain.ModeEnteringFight, domain.ModeExitingFight:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", m, opener, m, closer)
	}

	edge := func(from, to domain.Mode, label string, clips []domain.ClipName) {
		if len(clips) > 0 {
			label = fmt.Sprintf("%s <br/> %s", label, clipList(clips))
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escape(label), to)
	}
	// Timer expiries are dotted.
	timer := func(from, to domain.Mode, after time.Duration, clips []domain.ClipName) {
		fmt.Fprintf(&sb, "    %s -. \"⏱️ %s <br/> %s\" .-> %s\n", from, after, clipList(clips), to)
	}

	// Idle.
	timer(domain.ModeIdle, domain.ModeIdle, settings.IdleAfter, seq.IdleFiller)
	if settings.PointerEntersFight {
		edge(domain.ModeIdle, domain.ModeEnteringFight, string(domain.TriggerPointerEnter), seq.EnterFight)
	}
	if settings.ClickEntersFight {
		edge(domain.ModeIdle, domain.ModeEnteringFight, string(domain.TriggerClick), seq.EnterFight)
	}
	edge(domain.ModeIdle, domain.ModeEnteringFight, string(domain.TriggerToggle), seq.EnterFight)

	// Fight.
	edge(domain.ModeEnteringFight, domain.ModeFighting, "done", seq.FightIdle)
	edge(domain.ModeFighting, domain.ModeFighting, "click 1", concat(seq.LightHit, seq.FightIdle))
	edge(domain.ModeFighting, domain.ModeFighting, "click 2", concat(seq.HeavyHit, seq.FightIdle))
	edge(domain.ModeFighting, domain.ModeFighting, "click 3+", concat(seq.Knockout, seq.GetUp, seq.FightIdle))
	timer(domain.ModeFighting, domain.ModeExitingFight, settings.FightIdle, seq.ExitFight)
	edge(domain.ModeFighting, domain.ModeExitingFight, string(domain.TriggerToggle), seq.ExitFight)
	edge(domain.ModeExitingFight, domain.ModeIdle, "done", nil)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both themes
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", overlay.Current)
	}

	return sb.String()
}

// Markdown wraps the diagram and the sequence catalog in a markdown document.
func Markdown(settings mode.Settings, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("# Interaction modes\n\n")
	if overlay != nil {
		fmt.Fprintf(&sb, "Current mode: **%s** (hits: %d)\n\n", overlay.Current, overlay.HitCount)
	}
	sb.WriteString("```mermaid\n")
	sb.WriteString(GenerateMermaid(settings, overlay))
	sb.WriteString("```\n\n")
	sb.WriteString("## Sequences\n\n| Sequence | Clips |\n|---|---|\n")
	for _, s := range settings.Sequences.Named() {
		fmt.Fprintf(&sb, "| %s | %s |\n", s.Name, clipList(s.Clips))
	}
	return sb.String()
}

func concat(lists ...[]domain.ClipName) []domain.ClipName {
	var out []domain.ClipName
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func clipList(clips []domain.ClipName) string {
	parts := make([]string, len(clips))
	for i, c := range clips {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
