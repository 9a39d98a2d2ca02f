package main

import (
	"math"

	"github.com/Garsondee/Shadow-Sense/internal/game"
)

const arriveDist = 0.3

// playerScript drives the player along a fixed route, one step per tick.
// The simulated guards only ever see the scripted stance and position; the
// script stands in for a human player during headless runs.
type playerScript struct {
	p         *game.Player
	speed     float64
	crouch    bool
	route     []game.Vec3
	idx       int
	done      bool
	onArrival func(*game.TestSim)
}

func newPlayerScript(p *game.Player, speed float64, crouch bool, route ...game.Vec3) *playerScript {
	return &playerScript{p: p, speed: speed, crouch: crouch, route: route}
}

// step advances the player by one tick of movement. Stance flags are kept
// in sync so perception sees a crouched walker or a sprinting runner.
func (ps *playerScript) step(ts *game.TestSim) {
	if !ps.p.Alive || ps.done {
		ps.p.Moving = false
		ps.p.Running = false
		return
	}

	goal := ps.route[ps.idx]
	if ps.p.Pos.PlanarDist(goal) < arriveDist {
		ps.idx++
		if ps.idx >= len(ps.route) {
			ps.done = true
			ps.p.Moving = false
			ps.p.Running = false
			if ps.onArrival != nil {
				fn := ps.onArrival
				ps.onArrival = nil
				fn(ts)
			}
			return
		}
		goal = ps.route[ps.idx]
	}

	heading := ps.p.Pos.HeadingTo(goal)
	step := game.Vec3{X: math.Cos(heading), Z: math.Sin(heading)}.Scale(ps.speed * ts.DT)
	ps.p.Pos = ps.p.Pos.Add(step)
	ps.p.Crouching = ps.crouch
	ps.p.Moving = true
	ps.p.Running = ps.speed > 3.0
}

// retrace reverses the walked portion of the route so the player heads back
// the way it came. Meant to be called from an onArrival hook.
func (ps *playerScript) retrace() {
	walked := ps.route
	rev := make([]game.Vec3, 0, len(walked))
	for i := len(walked) - 1; i >= 0; i-- {
		rev = append(rev, walked[i])
	}
	ps.route = rev
	ps.idx = 0
	ps.done = false
}
