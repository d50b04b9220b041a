// Package engine implements the authoritative simulation core: entity
// storage, the fixed-step clock, the event bus, and the spatial index that
// the input, visibility, snapshot, and reliable-delivery layers build on.
package engine

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec2 is a real-valued 2D position or displacement, in meters.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Mul(f float32) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) AddScaled(o Vec2, f float32) Vec2 {
	return Vec2{X: v.X + o.X*f, Y: v.Y + o.Y*f}
}

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Angle() Angle { return ToAngle(math32.Atan2(v.Y, v.X)) }

func (v Vec2) Length() float32 { return math32.Hypot(v.X, v.Y) }

func (v Vec2) LengthSquared() float32 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Distance(o Vec2) float32 { return v.Sub(o).Length() }

func (v Vec2) DistanceSquared(o Vec2) float32 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vec2) Norm() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// ClampMagnitude returns v truncated to length m, unmodified if already shorter.
func (v Vec2) ClampMagnitude(m float32) Vec2 {
	l2 := v.LengthSquared()
	if l2 <= m*m || l2 == 0 {
		return v
	}
	return v.Mul(m / math32.Sqrt(l2))
}

func Lerp(a, b, t float32) float32 { return a + (b-a)*t }

func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{X: Lerp(v.X, o.X, t), Y: Lerp(v.Y, o.Y, t)}
}

// Floor rounds toward negative infinity on both axes, used to map a
// continuous position onto a discrete visibility/spatial-hash cell.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: float32(math.Floor(float64(v.X))), Y: float32(math.Floor(float64(v.Y)))}
}

// MoveToward returns v displaced toward target by at most maxDistance,
// snapping exactly onto target rather than overshooting.
func (v Vec2) MoveToward(target Vec2, maxDistance float32) Vec2 {
	delta := target.Sub(v)
	d := delta.Length()
	if d <= maxDistance || d == 0 {
		return target
	}
	return v.AddScaled(delta, maxDistance/d)
}

func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Square(x float32) float32 { return x * x }
