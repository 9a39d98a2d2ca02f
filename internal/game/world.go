package game

import "math"

// Box is an axis-aligned opaque obstacle (a wall segment, crate, or building
// block). Min.Y is normally 0; Max.Y is the obstacle height.
type Box struct {
	Min, Max Vec3
}

// NewBox builds an obstacle from a ground-plane footprint and a height.
// (x,z) is the minimum corner, w/d extend along +X/+Z.
func NewBox(x, z, w, d, h float64) Box {
	return Box{
		Min: Vec3{X: x, Y: 0, Z: z},
		Max: Vec3{X: x + w, Y: h, Z: z + d},
	}
}

// World holds the static level geometry the engine queries: opaque obstacle
// boxes for occlusion/collision and declared light zones. It is read-only
// during a tick and owned by the level collaborator, not by the mission.
type World struct {
	obstacles []Box
	lights    []LightZone
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// AddObstacle registers an opaque static obstacle.
func (w *World) AddObstacle(b Box) {
	w.obstacles = append(w.obstacles, b)
}

// AddLightZone registers a bright or dark zone.
func (w *World) AddLightZone(z LightZone) {
	w.lights = append(w.lights, z)
}

// Obstacles returns the obstacle set for presentation layers.
func (w *World) Obstacles() []Box {
	return w.obstacles
}

// LightZones returns the light zone set for presentation layers.
func (w *World) LightZones() []LightZone {
	return w.lights
}

// Occluded reports whether any opaque obstacle blocks the segment from one
// eye-level point to another. Agent and target bodies are not part of the
// obstacle set, so they never block their own sightlines.
func (w *World) Occluded(from, to Vec3) bool {
	for _, b := range w.obstacles {
		if segmentIntersectsBox(from, to, b) {
			return true
		}
	}
	return false
}

// Blocked reports whether a ground position (expanded by the mover's radius)
// lies inside any obstacle footprint. Used by the movement side-step fallback.
func (w *World) Blocked(p Vec3, radius float64) bool {
	for _, b := range w.obstacles {
		if p.X+radius > b.Min.X && p.X-radius < b.Max.X &&
			p.Z+radius > b.Min.Z && p.Z-radius < b.Max.Z {
			return true
		}
	}
	return false
}

// segmentIntersectsBox runs a three-slab test for the segment from->to
// against the box. Same slab method as a 2D ray-vs-AABB check, with the
// vertical axis added so sightlines can pass above low obstacles.
func segmentIntersectsBox(from, to Vec3, b Box) bool {
	tMin := 0.0
	tMax := 1.0

	axes := [3][3]float64{
		{from.X, to.X - from.X, 0}, // origin, delta, slab index placeholder
		{from.Y, to.Y - from.Y, 1},
		{from.Z, to.Z - from.Z, 2},
	}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		origin := axes[i][0]
		delta := axes[i][1]
		if math.Abs(delta) < 1e-12 {
			if origin < lo[i] || origin > hi[i] {
				return false
			}
			continue
		}
		invD := 1.0 / delta
		t1 := (lo[i] - origin) * invD
		t2 := (hi[i] - origin) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
