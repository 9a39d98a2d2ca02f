package game

import (
	"fmt"
	"strings"
)

// DebugReport renders a plain-text snapshot of the whole simulation,
// suitable for pasting into a bug report: global alert, every agent's
// state, the player, and any live sound events.
func DebugReport(m *Mission) string {
	var sb strings.Builder

	state, level := m.GlobalAlertState()
	fmt.Fprintf(&sb, "=== Mission T=%d (%.1fs) ===\n", m.CurrentTick(), m.Now())
	fmt.Fprintf(&sb, "global_alert=%s level=%.3f meter=%.2f\n", state, level, m.DetectionMeter())

	p := m.Player()
	stance := "standing"
	if p.Crouching {
		stance = "crouching"
	}
	motion := "still"
	switch {
	case p.Running:
		motion = "running"
	case p.Moving:
		motion = "moving"
	}
	alive := "alive"
	if !p.Alive {
		alive = "dead"
	}
	fmt.Fprintf(&sb, "player: pos=(%.1f,%.1f) %s %s %s hp=%.0f/%.0f vis=%.2f\n",
		p.Pos.X, p.Pos.Z, alive, stance, motion, p.Health, p.MaxHealth, p.VisibilityMultiplier())

	fmt.Fprintf(&sb, "--- agents (%d) ---\n", len(m.Agents()))
	for _, a := range m.Agents() {
		if !a.Alive() {
			fmt.Fprintf(&sb, "%-4s DEAD pos=(%.1f,%.1f)\n", a.Label(), a.Pos().X, a.Pos().Z)
			continue
		}
		line := fmt.Sprintf("%-4s %-10s %-11s level=%.3f pos=(%.1f,%.1f) facing=%.2f hp=%.0f",
			a.Label(), a.State(), a.Mode(), a.AlertLevel(),
			a.Pos().X, a.Pos().Z, a.Facing(), a.Health())
		if last, ok := a.LastKnown(); ok {
			line += fmt.Sprintf(" last_known=(%.1f,%.1f)", last.X, last.Z)
		}
		if a.IsTarget() {
			line += " [target]"
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	events := m.Sounds().Events()
	fmt.Fprintf(&sb, "--- sounds (%d) ---\n", len(events))
	for _, e := range events {
		age := m.Sounds().Now() - e.At
		fmt.Fprintf(&sb, "%-8s at=(%.1f,%.1f) loud=%.2f radius=%.0f age=%.1fs\n",
			e.Category, e.Pos.X, e.Pos.Z, e.Loudness, e.Radius, age)
	}

	return sb.String()
}
