package vmath

import (
	"fmt"
	"math"
)

// Vec2 is a float64 2D vector in world space (Y grows upward)
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// V2Cross returns the perpendicular dot product a.X*b.Y - a.Y*b.X
// Positive when b is counter-clockwise from a
func V2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func V2LenSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Len(v Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

func V2Distance(a, b Vec2) float64 {
	return V2Len(V2Sub(a, b))
}

func V2Normalize(v Vec2) Vec2 {
	mag := V2Len(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2FromAngle returns the unit vector at angle radians from +X
func V2FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos, sin}
}

// V2Rotate rotates v counter-clockwise by angle radians
func V2Rotate(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// V2AngleBetween returns the signed angle in (-π, π] that rotates from onto to
// V2Rotate(from, V2AngleBetween(from, to)) points along to
func V2AngleBetween(from, to Vec2) float64 {
	return math.Atan2(V2Cross(from, to), V2Dot(from, to))
}

// V2ProjectOnto returns the component of v along axis, zero for a zero axis
func V2ProjectOnto(v, axis Vec2) Vec2 {
	den := V2LenSq(axis)
	if den == 0 {
		return Vec2{}
	}
	return V2Scale(axis, V2Dot(v, axis)/den)
}

// V2Lerp interpolates from a (t=0) to b (t=1)
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func V2IsZero(v Vec2) bool {
	return v.X == 0 && v.Y == 0
}

// V2IsFinite reports whether neither component is NaN or Inf
func V2IsFinite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Side classifies p against the line through start along between
// > 0 is the right-hand half-plane of the directed line, < 0 the left, 0 on it
func Side(p, start, between Vec2) float64 {
	return V2Cross(V2Sub(p, start), between)
}
