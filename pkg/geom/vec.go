// pkg/geom/vec.go
package geom

import "math"

// Vec - точка или направление на плоскости карты.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec) DistSq(o Vec) float64 {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx*dx + dy*dy
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Bearing is the angle of the direction from v to o in radians (atan2 convention).
func (v Vec) Bearing(o Vec) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// FromAngle returns the unit vector for the given angle.
func FromAngle(angle float64) Vec {
	return Vec{math.Cos(angle), math.Sin(angle)}
}

// MoveTowards advances from by at most step towards to.
// The second result reports whether the destination was reached.
func MoveTowards(from, to Vec, step float64) (Vec, bool) {
	d := to.Sub(from)
	dist := d.Len()
	if dist <= step || dist == 0 {
		return to, true
	}
	return from.Add(d.Scale(step / dist)), false
}
