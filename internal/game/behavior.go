package game

import "math"

// BehaviorMode is a closed variant over the four behaviours an agent can
// run. The mode is re-derived from the discrete alert state every tick
// rather than stored in a transition table.
type BehaviorMode int

const (
	ModePatrol BehaviorMode = iota
	ModeInvestigate
	ModeSearch
	ModeCombat
)

func (m BehaviorMode) String() string {
	switch m {
	case ModePatrol:
		return "patrol"
	case ModeInvestigate:
		return "investigate"
	case ModeSearch:
		return "search"
	case ModeCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// Speed multipliers relative to the walk/run base speeds.
const (
	investigateSpeedMul = 1.5 // x walk
	searchSpeedMul      = 0.8 // x run
	sideStepSpeedMul    = 0.5 // obstacle fallback, x mode speed
	strafeSpeedMul      = 0.5 // combat lateral dodge, x run
	scanRate            = 1.2 // rad/s while looking around on station
	swayRate            = 0.35
	swayArc             = 0.5 // radians of idle facing wobble
)

// --- Patrol (Idle) ---

// updatePatrol walks the waypoint loop. With no route the agent just sways
// on station. At each waypoint it dwells for a fixed time before moving on;
// the route index is cyclic.
func (a *Agent) updatePatrol(dt float64, m *Mission) {
	if len(a.route) == 0 {
		a.idleSway(dt)
		return
	}

	mv := &a.tun.Movement
	if a.waitRemaining >= 0 {
		a.waitRemaining -= dt
		a.idleSway(dt)
		if a.waitRemaining < 0 {
			a.routeIndex = (a.routeIndex + 1) % len(a.route)
		}
		return
	}

	goal := a.route[a.routeIndex]
	if a.moveToward(goal, mv.WalkSpeed, dt, m.world) {
		a.waitRemaining = mv.WaypointDwell
	}
}

// idleSway wobbles the facing so stationary agents look alive and sweep a
// small arc of their surroundings.
func (a *Agent) idleSway(dt float64) {
	a.swayPhase += swayRate * dt
	a.facing = normalizeAngle(a.facing + math.Cos(a.swayPhase)*swayArc*dt)
}

// --- Investigate (Suspicious) ---

// updateInvestigate heads for the last-known position at a brisk walk, looks
// around once there, and after the give-up time hard-resets: position
// forgotten and level forced straight to zero, not decayed.
func (a *Agent) updateInvestigate(dt float64, m *Mission) {
	if !a.hasLastKnown {
		a.updatePatrol(dt, m)
		return
	}

	mv := &a.tun.Movement
	if a.pos.PlanarDist(a.lastKnown) > mv.StopDist {
		a.moveToward(a.lastKnown, mv.WalkSpeed*investigateSpeedMul, dt, m.world)
	} else {
		a.facing = normalizeAngle(a.facing + scanRate*dt)
	}

	a.investigateElapsed += dt
	if a.investigateElapsed > a.tun.Alert.InvestigateGiveUpS {
		a.hasLastKnown = false
		a.level = 0
	}
}

// --- Search (Alerted) ---

// updateSearch is the committed version of investigate: faster approach, a
// longer sweep, and on timeout only a soft de-escalation — the level drops
// by a fixed amount and the state machine sorts out where that lands.
func (a *Agent) updateSearch(dt float64, m *Mission) {
	mv := &a.tun.Movement
	if a.hasLastKnown && a.pos.PlanarDist(a.lastKnown) > mv.StopDist {
		a.moveToward(a.lastKnown, mv.RunSpeed*searchSpeedMul, dt, m.world)
	} else {
		a.facing = normalizeAngle(a.facing + scanRate*dt)
	}

	a.searchElapsed += dt
	if a.searchElapsed > a.tun.Alert.SearchTimeoutS {
		a.level -= a.tun.Alert.SearchDeescalate
		if a.level < 0 {
			a.level = 0
		}
		a.searchElapsed = 0
	}
}

// --- Movement policy ---

// moveToward steers directly at the goal at the given speed, turning the
// facing toward the travel direction. When the direct step is blocked it
// falls back to a perpendicular side-step at half speed; there is no path
// planning. Returns true once within arrival distance of the goal.
func (a *Agent) moveToward(goal Vec3, speed, dt float64, w *World) bool {
	mv := &a.tun.Movement
	dist := a.pos.PlanarDist(goal)
	if dist < mv.ArriveDist {
		return true
	}

	heading := a.pos.HeadingTo(goal)
	a.turnToward(heading, dt)

	step := yawDir(heading).Scale(speed * dt)
	next := a.pos.Add(step)
	if w == nil || !w.Blocked(next, mv.AgentRadius) {
		a.pos = next
		return a.pos.PlanarDist(goal) < mv.ArriveDist
	}

	// Blocked: try a perpendicular side-step at half speed, either side.
	for _, side := range []float64{1, -1} {
		lateral := yawDir(heading + side*math.Pi/2).Scale(speed * sideStepSpeedMul * dt)
		next = a.pos.Add(lateral)
		if !w.Blocked(next, mv.AgentRadius) {
			a.pos = next
			return false
		}
	}
	return false
}

// turnToward rotates the facing toward a target yaw at the tuned turn rate.
func (a *Agent) turnToward(target float64, dt float64) {
	diff := normalizeAngle(target - a.facing)
	maxTurn := a.tun.Movement.TurnRate * dt
	if math.Abs(diff) <= maxTurn {
		a.facing = target
	} else if diff > 0 {
		a.facing = normalizeAngle(a.facing + maxTurn)
	} else {
		a.facing = normalizeAngle(a.facing - maxTurn)
	}
}
