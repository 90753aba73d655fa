package boundary

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/hexrail/vmath"
)

// SegmentCount is fixed by the hexagonal point loop
const SegmentCount = 3

// DefaultColors are assigned by segment id when none are configured
var DefaultColors = []string{"red", "green", "blue"}

var (
	ErrDegenerateSegment = errors.New("boundary: zero-length segment")
	ErrWinding           = errors.New("boundary: segments must wind counter-clockwise")
	ErrRadii             = errors.New("boundary: radii must satisfy 0 < inner < outer")
)

// Model is the fixed, ordered set of boundary segments. Immutable after construction.
type Model struct {
	segments [SegmentCount]Segment
	radius   float64
}

// HexagonPoints returns the six-point loop: for each of three angles 120° apart starting at
// startAngle (radians), the inner point followed by the outer point
func HexagonPoints(inner, outer, startAngle float64) [6]vmath.Vec2 {
	var points [6]vmath.Vec2
	for i := 0; i < SegmentCount; i++ {
		dir := vmath.V2FromAngle(startAngle + float64(i)*2*math.Pi/SegmentCount)
		points[2*i] = vmath.V2Scale(dir, inner)
		points[2*i+1] = vmath.V2Scale(dir, outer)
	}
	return points
}

// NewHexagon builds the model from radii and a start angle in degrees
func NewHexagon(inner, outer, startAngleDeg float64, colors []string) (*Model, error) {
	if inner <= 0 || outer <= inner {
		return nil, fmt.Errorf("%w: inner=%v outer=%v", ErrRadii, inner, outer)
	}
	return NewModel(HexagonPoints(inner, outer, startAngleDeg*math.Pi/180), colors)
}

// NewModel cuts segments from 4-point windows stepped by 2 over the cyclic
// sequence p0..p5,p0,p1; each window's first and third points are start and end
func NewModel(points [6]vmath.Vec2, colors []string) (*Model, error) {
	if len(colors) < SegmentCount {
		colors = DefaultColors
	}

	cyclic := [8]vmath.Vec2{}
	for i := range cyclic {
		cyclic[i] = points[i%len(points)]
	}

	m := &Model{}
	for id := 0; id < SegmentCount; id++ {
		var window [4]vmath.Vec2
		copy(window[:], cyclic[2*id:2*id+4])

		seg := newSegment(id, window, colors[id])
		if vmath.V2IsZero(seg.Between) {
			return nil, fmt.Errorf("%w: segment %d at %v", ErrDegenerateSegment, id, seg.Start)
		}
		m.segments[id] = seg

		for _, p := range window {
			m.radius = math.Max(m.radius, vmath.V2Len(p))
		}
	}

	// One side-test sign convention only holds if every turn has the same sense
	for id := 0; id < SegmentCount; id++ {
		next := m.segments[(id+1)%SegmentCount]
		if vmath.V2Cross(m.segments[id].Between, next.Between) <= 0 {
			return nil, fmt.Errorf("%w: turn at segment %d", ErrWinding, id)
		}
	}

	return m, nil
}

// Len returns the number of segments
func (m *Model) Len() int {
	return len(m.segments)
}

// Segment returns the segment with the given id
func (m *Model) Segment(id int) (Segment, bool) {
	if id < 0 || id >= len(m.segments) {
		return Segment{}, false
	}
	return m.segments[id], true
}

// Segments returns a copy of all segments in id order
func (m *Model) Segments() []Segment {
	out := make([]Segment, len(m.segments))
	copy(out, m.segments[:])
	return out
}

// Contains reports whether p is inside or on every boundary line
func (m *Model) Contains(p vmath.Vec2) bool {
	for _, seg := range m.segments {
		if seg.Outside(p) {
			return false
		}
	}
	return true
}

// Radius returns the largest distance from the origin to any mesh point
func (m *Model) Radius() float64 {
	return m.radius
}
