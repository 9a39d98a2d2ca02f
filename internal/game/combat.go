package game

import (
	"math"

	"go.uber.org/zap"
)

// --- Combat (Combat state) ---

// updateCombat engages the player directly. The last-known position tracks
// the player continuously while in this mode. Out of attack range the agent
// closes at run speed; inside close range it alternates lateral strafes with
// shots; at medium range it fires whenever the cooldown allows. Losing the
// target (player dead) drops the level to a fixed low value so the state
// machine falls out of combat on the next recompute.
func (a *Agent) updateCombat(dt float64, m *Mission) {
	p := m.player
	if p == nil || !p.Alive {
		a.level = a.tun.Alert.LostTargetLevel
		return
	}

	a.lastKnown = p.Pos
	a.hasLastKnown = true

	if a.attackCooldown > 0 {
		a.attackCooldown -= dt
	}

	ct := &a.tun.Combat
	mv := &a.tun.Movement
	dist := a.pos.PlanarDist(p.Pos)

	if dist > ct.AttackRange {
		a.moveToward(p.Pos, mv.RunSpeed, dt, m.world)
		return
	}

	heading := a.pos.HeadingTo(p.Pos)
	a.turnToward(heading, dt)

	if dist < ct.CloseRange {
		// Too close to trade shots standing still: dodge laterally for a
		// while, then snap a shot and strafe the other way.
		a.strafeElapsed += dt
		if a.strafeElapsed < ct.StrafeDuration {
			a.strafeStep(heading, dt, m.world)
			return
		}
		a.tryFire(dist, m)
		a.strafeDir = -a.strafeDir
		a.strafeElapsed = 0
		return
	}

	a.tryFire(dist, m)
}

// strafeStep moves perpendicular to the engagement heading, flipping sides
// when the dodge runs into geometry.
func (a *Agent) strafeStep(heading, dt float64, w *World) {
	mv := &a.tun.Movement
	step := yawDir(heading + a.strafeDir*math.Pi/2).Scale(mv.RunSpeed * strafeSpeedMul * dt)
	next := a.pos.Add(step)
	if w != nil && w.Blocked(next, mv.AgentRadius) {
		a.strafeDir = -a.strafeDir
		return
	}
	a.pos = next
}

// tryFire resolves one shot if the agent may shoot and the cooldown has
// elapsed. The high-value target role never initiates attacks. A shot always
// registers a gunshot sound event regardless of outcome, so nearby agents
// hear the fight and escalate.
func (a *Agent) tryFire(dist float64, m *Mission) {
	if a.isTarget || a.attackCooldown > 0 {
		return
	}
	p := m.player
	ct := &a.tun.Combat

	// Firing lines respect the same occlusion as sightlines.
	if m.world == nil || m.world.Occluded(a.pos.WithY(standEyeHeight), p.Pos.WithY(p.EyeHeight())) {
		return
	}

	a.attackCooldown = ct.Cooldown
	m.sounds.RegisterEvent(a.pos, 1.0, SoundGunshot)

	// Hit probability falls off linearly to half accuracy at max range and
	// drops further against moving or crouching targets.
	hitProb := ct.BaseAccuracy * (1.0 - 0.5*dist/ct.AttackRange)
	if p.Moving {
		hitProb *= ct.MovingTargetMul
	}
	if p.Crouching {
		hitProb *= ct.CrouchTargetMul
	}

	hit := m.rng.Float64() < hitProb
	if hit {
		p.ApplyDamage(ct.Damage)
	}
	m.log.Debug("agent fired",
		zap.String("agent", a.label),
		zap.Float64("dist", dist),
		zap.Float64("hit_prob", hitProb),
		zap.Bool("hit", hit),
		zap.Float64("player_health", p.Health),
	)
}
