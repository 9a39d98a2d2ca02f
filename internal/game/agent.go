package game

import "fmt"

// Agent is one controlled non-player entity: a patrolling guard or the
// mission's high-value target. All mutation happens inside the mission tick;
// external collaborators read agents through snapshots and mutate them only
// through TakeDamage.
type Agent struct {
	id    int
	label string
	pos   Vec3
	// facing is a single yaw angle in radians on the ground plane.
	facing float64

	alive     bool
	health    float64
	maxHealth float64

	// level is the continuous accumulated suspicion; state is its discrete
	// classification, recomputed from level at every tick.
	level float64
	state AlertState

	detectionRange     float64
	detectionHalfAngle float64

	// isTarget marks the high-value target role: shorter sight range, less
	// health, and it never initiates attacks.
	isTarget bool

	// lastKnown is the most recent position this agent associates with the
	// player. Cleared only by explicit give-up logic, never implicitly.
	lastKnown    Vec3
	hasLastKnown bool

	route      []Vec3
	routeIndex int

	// mode is the behaviour variant dispatched from state each tick.
	mode BehaviorMode

	// Per-mode timers, reset on mode entry.
	waitRemaining      float64 // patrol dwell countdown; <0 means moving
	investigateElapsed float64
	searchElapsed      float64
	strafeElapsed      float64
	strafeDir          float64 // +1 or -1, flipped after each strafe window
	attackCooldown     float64
	swayPhase          float64

	tun *Tuning
}

// newAgent builds a regular guard. Shared construction for both roles.
func newAgent(id int, pos Vec3, facing float64, route []Vec3, tun *Tuning) *Agent {
	return &Agent{
		id:                 id,
		label:              fmt.Sprintf("A%d", id),
		pos:                pos.WithY(0),
		facing:             facing,
		alive:              true,
		health:             tun.Agent.MaxHealth,
		maxHealth:          tun.Agent.MaxHealth,
		state:              AlertIdle,
		detectionRange:     tun.Agent.DetectionRange,
		detectionHalfAngle: tun.Agent.DetectionHalfAngle,
		route:              route,
		mode:               ModePatrol,
		waitRemaining:      -1,
		strafeDir:          1,
		tun:                tun,
	}
}

// newHighValueTarget builds the target-role agent: softer, shorter-sighted,
// and labelled T for presentation.
func newHighValueTarget(id int, pos Vec3, facing float64, route []Vec3, tun *Tuning) *Agent {
	a := newAgent(id, pos, facing, route, tun)
	a.label = fmt.Sprintf("T%d", id)
	a.isTarget = true
	a.health = tun.Agent.TargetMaxHealth
	a.maxHealth = tun.Agent.TargetMaxHealth
	a.detectionRange = tun.Agent.TargetRange
	return a
}

// --- Read-only accessors for collaborators and tests ---

func (a *Agent) ID() int            { return a.id }
func (a *Agent) Label() string      { return a.label }
func (a *Agent) Pos() Vec3          { return a.pos }
func (a *Agent) Facing() float64    { return a.facing }
func (a *Agent) Alive() bool        { return a.alive }
func (a *Agent) Health() float64    { return a.health }
func (a *Agent) IsTarget() bool     { return a.isTarget }
func (a *Agent) AlertLevel() float64 { return a.level }
func (a *Agent) State() AlertState  { return a.state }
func (a *Agent) Mode() BehaviorMode { return a.mode }
func (a *Agent) Route() []Vec3      { return a.route }
func (a *Agent) DetectionRange() float64 { return a.detectionRange }
func (a *Agent) DetectionHalfAngle() float64 { return a.detectionHalfAngle }

// LastKnown returns the agent's last-known target position, if any.
func (a *Agent) LastKnown() (Vec3, bool) {
	return a.lastKnown, a.hasLastKnown
}

// TakeDamage applies a hit from the weapon-resolution collaborator and
// reports whether it killed the agent. Headshots double the damage. Being
// shot always forces maximum alertness. Damage to an already-dead agent is
// silently ignored.
func (a *Agent) TakeDamage(amount float64, headshot bool) bool {
	if !a.alive {
		return false
	}
	if headshot {
		amount *= 2
	}
	a.health -= amount
	if a.level < a.tun.Alert.CombatThreshold {
		a.level = a.tun.Alert.CombatThreshold
	}
	a.state = AlertCombat
	if a.health <= 0 {
		a.health = 0
		a.alive = false
		return true
	}
	return false
}

// update runs one agent tick: decay, stimulus intake, state recompute, and
// behaviour dispatch. Agents are updated sequentially by the mission, each
// reading only end-of-previous-tick state from the world, sounds and player.
func (a *Agent) update(dt float64, m *Mission) {
	if !a.alive {
		return
	}

	// Passive decay. Combat does not decay on its own — it only drops via
	// explicit disengage logic in the combat handler.
	if a.state != AlertCombat && a.level > 0 {
		a.level -= a.tun.Alert.DecayRate * dt
		if a.level < 0 {
			a.level = 0
		}
	}

	// Sight stimulus. Any positive rate means the agent can see the player
	// right now, so the last-known position refreshes as well.
	if rate := DetectionRate(a, m.player, m.world, dt); rate > 0 {
		a.level += rate
		a.lastKnown = m.player.Pos
		a.hasLastKnown = true
	}

	// Sound stimulus: a heard gunshot floors the level and seeds a
	// last-known position when the agent has none yet.
	if ev, _, ok := m.sounds.LoudestAudibleTo(a.pos); ok && ev.Category == SoundGunshot {
		if a.level < a.tun.Alert.GunshotFloor {
			a.level = a.tun.Alert.GunshotFloor
		}
		if !a.hasLastKnown {
			a.lastKnown = ev.Pos
			a.hasLastKnown = true
		}
	}

	a.state = stateForLevel(a.level, &a.tun.Alert)

	a.dispatch(dt, m)

	// Behaviour handlers may mutate the level (give-up resets, search
	// de-escalation, lost-target drop), so the discrete state is recomputed
	// once more. At tick end state and level always agree.
	a.state = stateForLevel(a.level, &a.tun.Alert)
}

// dispatch selects the behaviour mode for the current alert state and runs
// its handler, resetting mode-local timers when the mode changes.
func (a *Agent) dispatch(dt float64, m *Mission) {
	mode := ModePatrol
	switch a.state {
	case AlertSuspicious:
		mode = ModeInvestigate
	case AlertAlerted:
		mode = ModeSearch
	case AlertCombat:
		mode = ModeCombat
	}
	if mode != a.mode {
		a.enterMode(mode)
	}

	switch a.mode {
	case ModeInvestigate:
		a.updateInvestigate(dt, m)
	case ModeSearch:
		a.updateSearch(dt, m)
	case ModeCombat:
		a.updateCombat(dt, m)
	default:
		a.updatePatrol(dt, m)
	}
}

// enterMode switches behaviour mode and clears the new mode's timers.
func (a *Agent) enterMode(mode BehaviorMode) {
	a.mode = mode
	switch mode {
	case ModePatrol:
		a.waitRemaining = -1
	case ModeInvestigate:
		a.investigateElapsed = 0
	case ModeSearch:
		a.searchElapsed = 0
	case ModeCombat:
		a.strafeElapsed = 0
	}
}
