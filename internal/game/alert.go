package game

// AlertState is the discrete classification of an agent's continuous alert
// level. It is recomputed from the level every tick — there is no transition
// table, so the state moves backward on its own as the level decays.
type AlertState int

const (
	AlertIdle AlertState = iota
	AlertSuspicious
	AlertAlerted
	AlertCombat
)

func (s AlertState) String() string {
	switch s {
	case AlertIdle:
		return "idle"
	case AlertSuspicious:
		return "suspicious"
	case AlertAlerted:
		return "alerted"
	case AlertCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// stateForLevel maps a continuous alert level onto the discrete state via
// the fixed ascending thresholds.
func stateForLevel(level float64, tun *AlertTuning) AlertState {
	switch {
	case level >= tun.CombatThreshold:
		return AlertCombat
	case level >= tun.AlertedThreshold:
		return AlertAlerted
	case level >= tun.SuspiciousThreshold:
		return AlertSuspicious
	default:
		return AlertIdle
	}
}

// GlobalAlert reduces all live agents to the single mission-wide alert
// signal: the state and level of the most-alert agent. Ties break to the
// first agent encountered, so the result is stable for a fixed agent order.
// With no live agents the mission reads as fully idle.
func GlobalAlert(agents []*Agent) (AlertState, float64) {
	state := AlertIdle
	level := 0.0
	found := false
	for _, a := range agents {
		if !a.alive {
			continue
		}
		if !found || a.level > level {
			state = a.state
			level = a.level
			found = true
		}
	}
	return state, level
}

// DetectionMeter returns the maximum alert level across live agents clamped
// to [0,1]. Levels may exceed 1.0 internally during combat; the externally
// reported meter never does.
func DetectionMeter(agents []*Agent) float64 {
	_, level := GlobalAlert(agents)
	return clamp01(level)
}

// AlertAll forces a stimulus onto every live agent: each adopts the given
// position as its last-known target position and has its alert level floored
// at the given value. Used by scripted mission events.
func AlertAll(agents []*Agent, pos Vec3, level float64) {
	for _, a := range agents {
		if !a.alive {
			continue
		}
		a.lastKnown = pos
		a.hasLastKnown = true
		if a.level < level {
			a.level = level
		}
		a.state = stateForLevel(a.level, &a.tun.Alert)
	}
}
