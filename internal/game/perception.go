package game

import "math"

// Eye heights for sightline endpoints. The observer always sights from
// standing eye level; the target's end drops when crouching.
const (
	standEyeHeight  = 1.7
	crouchEyeHeight = 0.9
)

// DetectionRate returns the alert-level accumulation one observer gains from
// one target over dt seconds, or 0 when the target cannot be seen at all.
//
// Gates run in order and any failure short-circuits to 0: target alive,
// distance within the observer's detection range, angle within the
// field-of-view half-angle, and an unobstructed sightline. A nil world means
// the occlusion collaborator cannot answer, and the sightline is treated as
// blocked — failing closed beats detecting the player through broken
// geometry.
//
// Past the gates, the base rate for the observer's current alert state is
// scaled by four multiplicative modifiers: proximity (up to 2x at point
// blank), view centering (peripheral sightings at half rate), the target's
// own visibility multiplier (stance and motion), and the lighting field at
// the target's position.
func DetectionRate(obs *Agent, target *Player, world *World, dt float64) float64 {
	if target == nil || !target.Alive {
		return 0
	}

	obsEye := obs.pos.WithY(standEyeHeight)
	targetEye := target.Pos.WithY(target.EyeHeight())

	dist := obsEye.Dist(targetEye)
	if dist > obs.detectionRange || obs.detectionRange <= 0 {
		return 0
	}

	angle := math.Abs(normalizeAngle(obs.pos.HeadingTo(target.Pos) - obs.facing))
	if angle > obs.detectionHalfAngle || obs.detectionHalfAngle <= 0 {
		return 0
	}

	if world == nil || world.Occluded(obsEye, targetEye) {
		return 0
	}

	baseRate := obs.baseDetectionRate()

	// Closer targets are spotted faster, up to twice as fast at point blank.
	distanceMod := 1.0 + (1.0 - dist/obs.detectionRange)

	// Dead-center sightings accumulate at full rate, peripheral ones at half.
	angleMod := 0.5 + 0.5*(1.0-angle/obs.detectionHalfAngle)

	lightMod := world.LightModifierAt(target.Pos)

	return baseRate * distanceMod * angleMod * target.VisibilityMultiplier() * lightMod * dt
}

// baseDetectionRate returns the per-second accumulation constant for the
// agent's current alert state. More alert observers notice things faster.
func (a *Agent) baseDetectionRate() float64 {
	p := &a.tun.Perception
	switch a.state {
	case AlertSuspicious:
		return p.BaseRateSuspicious
	case AlertAlerted:
		return p.BaseRateAlerted
	case AlertCombat:
		return p.BaseRateCombat
	default:
		return p.BaseRateIdle
	}
}
