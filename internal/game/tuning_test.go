package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuning_ThresholdsAscend(t *testing.T) {
	tun := DefaultTuning()

	assert.Less(t, tun.Alert.SuspiciousThreshold, tun.Alert.AlertedThreshold)
	assert.Less(t, tun.Alert.AlertedThreshold, tun.Alert.CombatThreshold)

	// Perception base rates rise strictly with observer alertness.
	p := tun.Perception
	assert.Less(t, p.BaseRateIdle, p.BaseRateSuspicious)
	assert.Less(t, p.BaseRateSuspicious, p.BaseRateAlerted)
	assert.Less(t, p.BaseRateAlerted, p.BaseRateCombat)

	// The target role is softer and easier to approach than a guard.
	assert.Less(t, tun.Agent.TargetMaxHealth, tun.Agent.MaxHealth)
	assert.Less(t, tun.Agent.TargetRange, tun.Agent.DetectionRange)
}

func TestLoadTuning_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	yaml := []byte(`alert:
  suspicious_threshold: 0.2
  decay_rate: 0.25
combat:
  damage: 35
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	tun, err := LoadTuning(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, tun.Alert.SuspiciousThreshold, 1e-9)
	assert.InDelta(t, 0.25, tun.Alert.DecayRate, 1e-9)
	assert.InDelta(t, 35, tun.Combat.Damage, 1e-9)

	// Untouched keys fall back to the shipped defaults.
	def := DefaultTuning()
	assert.InDelta(t, def.Alert.AlertedThreshold, tun.Alert.AlertedThreshold, 1e-9)
	assert.InDelta(t, def.Movement.WalkSpeed, tun.Movement.WalkSpeed, 1e-9)
	assert.InDelta(t, def.Perception.BaseRateCombat, tun.Perception.BaseRateCombat, 1e-9)
	assert.InDelta(t, def.Agent.DetectionHalfAngle, tun.Agent.DetectionHalfAngle, 1e-9)
}

func TestLoadTuning_MissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
