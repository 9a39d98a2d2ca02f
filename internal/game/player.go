package game

// Player is the engine's view of the protagonist: a snapshot owned and
// mutated by the input/controller collaborator and read by every agent
// within a tick. The engine never moves the player.
type Player struct {
	Pos       Vec3
	Alive     bool
	Crouching bool
	Moving    bool
	Running   bool

	Health    float64
	MaxHealth float64
}

// NewPlayer creates a live player at the given position.
func NewPlayer(pos Vec3) *Player {
	return &Player{
		Pos:       pos,
		Alive:     true,
		Health:    playerMaxHealth,
		MaxHealth: playerMaxHealth,
	}
}

const playerMaxHealth = 100.0

// VisibilityMultiplier combines the player's stance and motion into a single
// detection-speed factor. Crouching halves it, running scales it by 1.5, and
// standing still scales it by 0.7. The factors compose multiplicatively, so a
// crouched runner is 0.5 * 1.5 = 0.75.
func (p *Player) VisibilityMultiplier() float64 {
	m := 1.0
	if p.Crouching {
		m *= 0.5
	}
	if p.Running {
		m *= 1.5
	}
	if !p.Moving {
		m *= 0.7
	}
	return m
}

// EyeHeight returns the player's eye level, lower when crouching.
func (p *Player) EyeHeight() float64 {
	if p.Crouching {
		return crouchEyeHeight
	}
	return standEyeHeight
}

// ApplyDamage subtracts health and flips Alive when it reaches zero.
// Damaging a dead player is a no-op.
func (p *Player) ApplyDamage(amount float64) {
	if !p.Alive {
		return
	}
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		p.Alive = false
	}
}
