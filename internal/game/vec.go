package game

import "math"

// Vec3 is a world-space position or direction. Y is up; agents and the
// player move on the X/Z ground plane.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the full 3D length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist returns the 3D distance between v and o.
func (v Vec3) Dist(o Vec3) float64 {
	return o.Sub(v).Len()
}

// PlanarDist returns the ground-plane (X/Z) distance between v and o.
// Movement and arrival checks ignore height.
func (v Vec3) PlanarDist(o Vec3) float64 {
	dx := o.X - v.X
	dz := o.Z - v.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// WithY returns v with its height replaced.
func (v Vec3) WithY(y float64) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// HeadingTo returns the yaw in radians from v toward o on the ground plane.
func (v Vec3) HeadingTo(o Vec3) float64 {
	return math.Atan2(o.Z-v.Z, o.X-v.X)
}

// yawDir returns the unit ground-plane direction for a yaw angle.
func yawDir(yaw float64) Vec3 {
	return Vec3{X: math.Cos(yaw), Z: math.Sin(yaw)}
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
