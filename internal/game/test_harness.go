package game

import "fmt"

// TestSim is a headless simulation harness used by tests and the report
// tool. It mirrors the mission driver loop with deterministic seeding and
// structured change logging, and no presentation dependency.
type TestSim struct {
	World   *World
	Player  *Player
	Mission *Mission
	SimLog  *SimLog
	Tuning  *Tuning

	// DT is the fixed tick duration in seconds.
	DT float64

	seed    int64
	verbose bool

	prevStates map[int]AlertState
	prevModes  map[int]BehaviorMode
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // world geometry, seed, tuning, verbose
	simOptAgent                      // add agents — applied after the mission exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithTickRate sets the fixed per-tick duration in seconds.
func WithTickRate(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.DT = dt
	}}
}

// WithTuning overrides the default parameter set.
func WithTuning(tun *Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Tuning = tun
	}}
}

// WithObstacle adds an opaque box obstacle: ground footprint (x,z,w,d) and height h.
func WithObstacle(x, z, w, d, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.AddObstacle(NewBox(x, z, w, d, h))
	}}
}

// WithBrightZone declares a bright light zone.
func WithBrightZone(x, z, radius float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.AddLightZone(LightZone{Center: Vec3{X: x, Z: z}, Radius: radius, Bright: true})
	}}
}

// WithDarkZone declares a dark zone.
func WithDarkZone(x, z, radius float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.AddLightZone(LightZone{Center: Vec3{X: x, Z: z}, Radius: radius})
	}}
}

// WithPlayer places the player.
func WithPlayer(x, z float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Player.Pos = Vec3{X: x, Z: z}
	}}
}

// WithAgent adds a stationary guard at (x,z) facing the given yaw.
func WithAgent(id int, x, z, facing float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		ts.Mission.AddAgent(id, Vec3{X: x, Z: z}, facing, nil)
	}}
}

// WithPatrolAgent adds a guard patrolling the given (x,z) waypoint loop.
func WithPatrolAgent(id int, waypoints ...[2]float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		route := make([]Vec3, 0, len(waypoints))
		for _, wp := range waypoints {
			route = append(route, Vec3{X: wp[0], Z: wp[1]})
		}
		var pos Vec3
		var facing float64
		if len(route) > 0 {
			pos = route[0]
			if len(route) > 1 {
				facing = route[0].HeadingTo(route[1])
			}
		}
		ts.Mission.AddAgent(id, pos, facing, route)
	}}
}

// WithHighValueTarget adds the target-role agent.
func WithHighValueTarget(id int, x, z, facing float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		ts.Mission.AddHighValueTarget(id, Vec3{X: x, Z: z}, facing, nil)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes: infrastructure
// (world, player, seed, tuning), then agents against the built mission.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		World:      NewWorld(),
		Player:     NewPlayer(Vec3{}),
		DT:         1.0 / 60.0,
		seed:       1,
		prevStates: map[int]AlertState{},
		prevModes:  map[int]BehaviorMode{},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.Tuning == nil {
		ts.Tuning = DefaultTuning()
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Mission = NewMission(ts.World, ts.Player, ts.Tuning, ts.seed, nil)
	for _, o := range opts {
		if o.kind == simOptAgent {
			o.fn(ts)
		}
	}
	// Baseline the change detectors so a transition on the very first tick
	// is still logged.
	for _, a := range ts.Mission.Agents() {
		ts.prevStates[a.id] = a.state
		ts.prevModes[a.id] = a.mode
	}
	return ts
}

// RunTicks advances the simulation n ticks of DT seconds each.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunSeconds advances the simulation by whole ticks covering the duration.
func (ts *TestSim) RunSeconds(seconds float64) {
	n := int(seconds/ts.DT + 0.5)
	ts.RunTicks(n)
}

// RunUntil advances the simulation up to maxTicks, stopping early when the
// predicate becomes true. Returns the tick it was satisfied on, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Mission.CurrentTick()
		}
	}
	return -1
}

// CurrentTick returns the completed tick count.
func (ts *TestSim) CurrentTick() int {
	return ts.Mission.CurrentTick()
}

// Agents returns the mission's agent set.
func (ts *TestSim) Agents() []*Agent {
	return ts.Mission.Agents()
}

// AgentByID finds an agent by ID, or nil.
func (ts *TestSim) AgentByID(id int) *Agent {
	for _, a := range ts.Mission.Agents() {
		if a.id == id {
			return a
		}
	}
	return nil
}

// runOneTick advances one tick and records change-detection log entries.
func (ts *TestSim) runOneTick() {
	ts.Mission.Tick(ts.DT)
	tick := ts.Mission.CurrentTick()

	for _, a := range ts.Mission.Agents() {
		prevState, seen := ts.prevStates[a.id]
		if seen && a.state != prevState {
			ts.SimLog.Add(tick, a.label, "alert", "state_change",
				fmt.Sprintf("%s → %s", prevState, a.state), a.level)
		}
		ts.prevStates[a.id] = a.state

		prevMode, seen := ts.prevModes[a.id]
		if seen && a.mode != prevMode {
			ts.SimLog.Add(tick, a.label, "behavior", "mode_change",
				fmt.Sprintf("%s → %s", prevMode, a.mode), 0)
		}
		ts.prevModes[a.id] = a.mode

		ts.SimLog.AddVerbose(tick, a.label, "alert", "level",
			fmt.Sprintf("%.3f", a.level), a.level)
		ts.SimLog.AddVerbose(tick, a.label, "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", a.pos.X, a.pos.Z), 0)
	}

	if !ts.Player.Alive {
		if !ts.SimLog.HasEntry("player", "dead", "") {
			ts.SimLog.Add(tick, "--", "player", "dead", "player killed", 0)
		}
	}

	_, level := ts.Mission.GlobalAlertState()
	ts.SimLog.AddVerbose(tick, "--", "alert", "global_level",
		fmt.Sprintf("%.3f", level), level)
}
