package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Agent    string  // label e.g. "A0", "T3", or "--" for global events
	Category string  // alert, behavior, sound, combat, move, player
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] A0   alert   state_change   idle → suspicious
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation run. It is
// unbounded and machine-readable, meant for tests and the report tool.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick level/position
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, agent, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Agent:    agent,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, agent, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, agent, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstOf returns the earliest entry matching category+key whose value
// contains the given substring ("" matches anything), or false if none.
func (sl *SimLog) FirstOf(category, key, valueSubstr string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return e, true
	}
	return SimLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	_, ok := sl.FirstOf(category, key, valueSubstr)
	return ok
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the simulation state.
func (sl *SimLog) Summary(tick int, agents []*Agent, player *Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	counts := map[AlertState]int{}
	dead := 0
	for _, a := range agents {
		if !a.alive {
			dead++
			continue
		}
		counts[a.state]++
	}
	sb.WriteString("agents: ")
	for _, s := range []AlertState{AlertIdle, AlertSuspicious, AlertAlerted, AlertCombat} {
		if n := counts[s]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", s, n)
		}
	}
	if dead > 0 {
		fmt.Fprintf(&sb, "dead=%d", dead)
	}
	sb.WriteByte('\n')

	state, level := GlobalAlert(agents)
	fmt.Fprintf(&sb, "global alert: %s (level=%.2f, meter=%.2f)\n",
		state, level, DetectionMeter(agents))

	if player != nil {
		status := "alive"
		if !player.Alive {
			status = "dead"
		}
		fmt.Fprintf(&sb, "player: %s health=%.0f at (%.1f,%.1f)\n",
			status, player.Health, player.Pos.X, player.Pos.Z)
	}
	return sb.String()
}
