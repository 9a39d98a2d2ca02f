package game

// LightZone is a declared bright or dark circular region on the ground
// plane. Bright zones speed detection up, dark zones slow it down.
type LightZone struct {
	Center Vec3
	Radius float64
	Bright bool
}

// LightModifierAt returns the detection-speed multiplier at a position:
// 1.5 inside the nearest bright zone, 0.5 inside the nearest dark zone,
// 1.0 otherwise. Membership is a nearest-zone-center distance test only —
// light is not occluded by geometry.
func (w *World) LightModifierAt(p Vec3) float64 {
	best := -1
	bestDist := 0.0
	for i, z := range w.lights {
		d := p.PlanarDist(z.Center)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return 1.0
	}
	z := w.lights[best]
	if bestDist > z.Radius {
		return 1.0
	}
	if z.Bright {
		return lightBrightMul
	}
	return lightDarkMul
}

const (
	lightBrightMul = 1.5
	lightDarkMul   = 0.5
)
