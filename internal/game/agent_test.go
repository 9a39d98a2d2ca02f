package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateForLevel_Thresholds(t *testing.T) {
	tun := &DefaultTuning().Alert

	assert.Equal(t, AlertIdle, stateForLevel(0, tun))
	assert.Equal(t, AlertIdle, stateForLevel(0.29, tun))
	assert.Equal(t, AlertSuspicious, stateForLevel(0.3, tun))
	assert.Equal(t, AlertSuspicious, stateForLevel(0.35, tun))
	assert.Equal(t, AlertSuspicious, stateForLevel(0.69, tun))
	assert.Equal(t, AlertAlerted, stateForLevel(0.7, tun))
	assert.Equal(t, AlertCombat, stateForLevel(1.0, tun))
	assert.Equal(t, AlertCombat, stateForLevel(2.5, tun))
}

func TestTakeDamage_HeadshotDoublesAndKillsOnce(t *testing.T) {
	tun := DefaultTuning()
	tun.Agent.MaxHealth = 50
	a := newAgent(0, Vec3{}, 0, nil, tun)

	killed := a.TakeDamage(40, true) // 80 damage vs 50 health
	assert.True(t, killed)
	assert.False(t, a.alive)
	assert.Zero(t, a.health)

	// Further damage to a dead agent is a silent no-op.
	assert.False(t, a.TakeDamage(40, true))
	assert.False(t, a.TakeDamage(1, false))
	assert.Zero(t, a.health)
}

func TestTakeDamage_ForcesCombat(t *testing.T) {
	a := newAgent(0, Vec3{}, 0, nil, DefaultTuning())
	require.Equal(t, AlertIdle, a.state)

	killed := a.TakeDamage(10, false)
	assert.False(t, killed)
	assert.Equal(t, AlertCombat, a.state)
	assert.GreaterOrEqual(t, a.level, 1.0)
	assert.InDelta(t, 90, a.health, 1e-9)
}

func TestTakeDamage_DoesNotLowerOverchargedLevel(t *testing.T) {
	a := newAgent(0, Vec3{}, 0, nil, DefaultTuning())
	a.level = 1.4
	a.state = AlertCombat

	a.TakeDamage(10, false)
	assert.InDelta(t, 1.4, a.level, 1e-9, "damage floors the level at combat, never reduces it")
}

func TestAgentUpdate_DecayOutsideCombat(t *testing.T) {
	ts := NewTestSim(
		WithSeed(1),
		WithTickRate(0.1),
		WithAgent(0, 0, 0, 0),
		WithPlayer(100, 100), // far out of range
	)
	a := ts.AgentByID(0)
	a.level = 0.5
	a.state = AlertSuspicious

	ts.RunTicks(10) // one second at decay 0.1/s
	assert.InDelta(t, 0.4, a.level, 1e-6)

	// Decay floors at zero.
	a.level = 0.005
	ts.RunTicks(10)
	assert.Zero(t, a.level)
}

func TestAgentUpdate_CombatDoesNotPassivelyDecay(t *testing.T) {
	ts := NewTestSim(
		WithSeed(1),
		WithTickRate(0.1),
		WithAgent(0, 0, 0, 0),
		WithPlayer(0, 2), // in attack range, visible — combat stays engaged
	)
	a := ts.AgentByID(0)
	a.level = 1.2
	a.state = AlertCombat

	ts.RunTicks(5)
	assert.GreaterOrEqual(t, a.level, 1.2, "combat level must not decay while the target is live")
}

func TestAgentUpdate_GunshotFloorsLevelAndSeedsLastKnown(t *testing.T) {
	ts := NewTestSim(
		WithSeed(1),
		WithTickRate(0.1),
		WithAgent(0, 0, 0, 0),
		WithPlayer(200, 200),
	)
	shotPos := Vec3{X: 10, Z: 0}
	ts.Mission.Sounds().RegisterEvent(shotPos, 1.0, SoundGunshot)

	ts.RunTicks(1)
	a := ts.AgentByID(0)
	assert.GreaterOrEqual(t, a.level, 0.5-ts.Tuning.Alert.DecayRate*ts.DT)
	last, ok := a.LastKnown()
	require.True(t, ok)
	assert.Equal(t, shotPos, last)
	assert.Equal(t, AlertSuspicious, a.state)
}

func TestAgentUpdate_FootstepDoesNotFloorLevel(t *testing.T) {
	ts := NewTestSim(
		WithSeed(1),
		WithTickRate(0.1),
		WithAgent(0, 0, 0, 0),
		WithPlayer(200, 200),
	)
	ts.Mission.Sounds().RegisterEvent(Vec3{X: 3, Z: 0}, 1.0, SoundFootstep)

	ts.RunTicks(1)
	assert.Zero(t, ts.AgentByID(0).level)
}

func TestAgentUpdate_SightRefreshesLastKnown(t *testing.T) {
	ts := NewTestSim(
		WithSeed(1),
		WithTickRate(0.1),
		WithAgent(0, 0, 0, 0),
		WithPlayer(5, 0),
	)
	ts.RunTicks(1)
	a := ts.AgentByID(0)
	last, ok := a.LastKnown()
	require.True(t, ok)
	assert.Equal(t, ts.Player.Pos, last)
	assert.Greater(t, a.level, 0.0)
}

func TestHighValueTarget_Profile(t *testing.T) {
	tun := DefaultTuning()
	a := newHighValueTarget(3, Vec3{}, 0, nil, tun)

	assert.True(t, a.isTarget)
	assert.Equal(t, "T3", a.label)
	assert.InDelta(t, tun.Agent.TargetMaxHealth, a.health, 1e-9)
	assert.InDelta(t, tun.Agent.TargetRange, a.detectionRange, 1e-9)
	assert.Less(t, a.detectionRange, tun.Agent.DetectionRange)
}
