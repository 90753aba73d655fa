package vmath

import (
	"math"
)

const (
	// ParallelEpsilon bounds |sin θ| between two lines below which they are treated as parallel
	ParallelEpsilon = 1e-9
	// SegmentEpsilon widens the [0, 1] segment parameter range to absorb rounding at endpoints
	SegmentEpsilon = 1e-9
)

// Hit describes the crossing of the infinite lines p1→p2 and p3→p4
// Point = p1 + T*(p2-p1) = p3 + U*(p4-p3)
type Hit struct {
	Point Vec2
	T, U  float64
}

// OnSegment reports whether the crossing lies within the finite extent of p3→p4
func (h Hit) OnSegment() bool {
	return h.U >= -SegmentEpsilon && h.U <= 1+SegmentEpsilon
}

// OnMotion reports whether the crossing lies within the finite extent of p1→p2
func (h Hit) OnMotion() bool {
	return h.T >= -SegmentEpsilon && h.T <= 1+SegmentEpsilon
}

// denominator returns the 2x2 determinant shared by every intersection formula,
// and false when the lines are parallel, coincident, or either one is degenerate
func denominator(p1, p2, p3, p4 Vec2) (float64, bool) {
	xd12, yd12 := p1.X-p2.X, p1.Y-p2.Y
	xd34, yd34 := p3.X-p4.X, p3.Y-p4.Y

	den := xd12*yd34 - yd12*xd34

	// Relative to the lengths so the test is scale independent
	scale := math.Hypot(xd12, yd12) * math.Hypot(xd34, yd34)
	if math.Abs(den) <= ParallelEpsilon*scale {
		return 0, false
	}
	return den, true
}

// Intersect returns the point where the infinite lines through (p1, p2) and (p3, p4) cross
// Returns false for parallel or coincident lines; the result is never NaN or Inf
func Intersect(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	den, ok := denominator(p1, p2, p3, p4)
	if !ok {
		return Vec2{}, false
	}

	yd12 := p1.Y - p2.Y
	yd34 := p3.Y - p4.Y

	det12 := p1.X*p2.Y - p1.Y*p2.X
	det34 := p3.X*p4.Y - p3.Y*p4.X

	xNum := det12*(p3.X-p4.X) - (p1.X-p2.X)*det34
	yNum := det12*yd34 - yd12*det34

	p := Vec2{xNum / den, yNum / den}
	if !V2IsFinite(p) {
		return Vec2{}, false
	}
	return p, true
}

// SegmentIntersect is Intersect with the line parameters of the crossing on both lines
// Callers decide which extents matter via Hit.OnSegment and Hit.OnMotion
func SegmentIntersect(p1, p2, p3, p4 Vec2) (Hit, bool) {
	p, ok := Intersect(p1, p2, p3, p4)
	if !ok {
		return Hit{}, false
	}
	den, _ := denominator(p1, p2, p3, p4)

	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / den
	u := -((p1.X-p2.X)*(p1.Y-p3.Y) - (p1.Y-p2.Y)*(p1.X-p3.X)) / den

	return Hit{Point: p, T: t, U: u}, true
}
