package game

import (
	"math/rand"

	"go.uber.org/zap"
)

// Mission is the top-level simulation driver. It owns the agent set and the
// sound registry, borrows the world and player by reference, and advances
// everything with one Tick per frame. All cross-component state flows through
// here — there are no ambient globals.
type Mission struct {
	world  *World
	player *Player
	sounds *SoundRegistry
	agents []*Agent

	tick int
	now  float64

	rng *rand.Rand
	log *zap.Logger
	tun *Tuning
}

// NewMission wires a mission together. A nil logger is replaced with a nop
// logger so the engine stays silent by default; a nil tuning gets defaults.
func NewMission(world *World, player *Player, tun *Tuning, seed int64, log *zap.Logger) *Mission {
	if tun == nil {
		tun = DefaultTuning()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mission{
		world:  world,
		player: player,
		sounds: NewSoundRegistry(),
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
		log:    log,
		tun:    tun,
	}
}

// AddAgent spawns a regular guard with an optional patrol route and returns it.
func (m *Mission) AddAgent(id int, pos Vec3, facing float64, route []Vec3) *Agent {
	a := newAgent(id, pos, facing, route, m.tun)
	m.agents = append(m.agents, a)
	return a
}

// AddHighValueTarget spawns the target-role agent.
func (m *Mission) AddHighValueTarget(id int, pos Vec3, facing float64, route []Vec3) *Agent {
	a := newHighValueTarget(id, pos, facing, route, m.tun)
	m.agents = append(m.agents, a)
	return a
}

// Agents returns the live agent collection (including dead members, which
// remain in place for presentation but are skipped by the simulation).
func (m *Mission) Agents() []*Agent {
	return m.agents
}

// Sounds returns the sound registry for the weapon/movement collaborator.
func (m *Mission) Sounds() *SoundRegistry {
	return m.sounds
}

// Player returns the borrowed player snapshot.
func (m *Mission) Player() *Player {
	return m.player
}

// World returns the borrowed level geometry.
func (m *Mission) World() *World {
	return m.world
}

// Tuning returns the active parameter set.
func (m *Mission) Tuning() *Tuning {
	return m.tun
}

// CurrentTick returns the number of completed ticks.
func (m *Mission) CurrentTick() int {
	return m.tick
}

// Now returns accumulated sim time in seconds.
func (m *Mission) Now() float64 {
	return m.now
}

// Tick advances the whole simulation by dt seconds. Agents update
// sequentially against end-of-previous-tick state; the global alert signal
// is derived afterwards, never mid-pass. A tick always runs to completion.
func (m *Mission) Tick(dt float64) {
	m.tick++
	m.now += dt
	m.sounds.Advance(dt)

	for _, a := range m.agents {
		prevState := a.state
		a.update(dt, m)
		if a.state != prevState {
			m.log.Debug("alert state change",
				zap.String("agent", a.label),
				zap.Stringer("from", prevState),
				zap.Stringer("to", a.state),
				zap.Float64("level", a.level),
			)
		}
	}
}

// GlobalAlertState reduces all live agents to the mission-wide alert signal.
func (m *Mission) GlobalAlertState() (AlertState, float64) {
	return GlobalAlert(m.agents)
}

// DetectionMeter returns the clamped [0,1] mission detection meter.
func (m *Mission) DetectionMeter() float64 {
	return DetectionMeter(m.agents)
}

// AlertAll forces every live agent onto the given position with a floor on
// alert level. Used by scripted mission events.
func (m *Mission) AlertAll(pos Vec3, level float64) {
	AlertAll(m.agents, pos, level)
	m.log.Info("alert all",
		zap.Float64("x", pos.X),
		zap.Float64("z", pos.Z),
		zap.Float64("floor", level),
	)
}

// AgentSnapshot is the read-only per-agent view handed to presentation
// layers every frame: vision-cone colouring, minimap icons, HUD.
type AgentSnapshot struct {
	ID         int
	Label      string
	X, Z       float64
	Facing     float64
	AlertState AlertState
	AlertLevel float64
	Alive      bool
	IsTarget   bool
	Health     float64
	Mode       BehaviorMode
}

// Snapshot captures every agent's externally visible state.
func (m *Mission) Snapshot() []AgentSnapshot {
	out := make([]AgentSnapshot, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, AgentSnapshot{
			ID:         a.id,
			Label:      a.label,
			X:          a.pos.X,
			Z:          a.pos.Z,
			Facing:     a.facing,
			AlertState: a.state,
			AlertLevel: a.level,
			Alive:      a.alive,
			IsTarget:   a.isTarget,
			Health:     a.health,
			Mode:       a.mode,
		})
	}
	return out
}
