package boundary

import (
	"strconv"

	"github.com/lixenwraith/hexrail/vmath"
)

// Segment is one immutable boundary edge. Only NewModel creates segments.
type Segment struct {
	ID      int
	Start   vmath.Vec2
	End     vmath.Vec2
	Between vmath.Vec2 // End - Start, never zero
	Normal  vmath.Vec2 // (Between.Y, -Between.X), points outward for a counter-clockwise loop

	// Mesh is the inner/outer point window the segment was cut from, in triangle-strip order
	Mesh [4]vmath.Vec2

	// Display identity, consumed by render and audio only
	Color string
	Sound string
}

func newSegment(id int, window [4]vmath.Vec2, color string) Segment {
	start, end := window[0], window[2]
	between := vmath.V2Sub(end, start)
	return Segment{
		ID:      id,
		Start:   start,
		End:     end,
		Between: between,
		Normal:  vmath.V2(between.Y, -between.X),
		Mesh:    window,
		Color:   color,
		Sound:   SoundFile(id),
	}
}

// Side returns V2Cross(p-Start, Between); positive means p is past the boundary
func (s Segment) Side(p vmath.Vec2) float64 {
	return vmath.Side(p, s.Start, s.Between)
}

// Outside reports whether p lies strictly past the boundary
func (s Segment) Outside(p vmath.Vec2) bool {
	return s.Side(p) > 0
}

// Length returns the distance from Start to End
func (s Segment) Length() float64 {
	return vmath.V2Distance(s.Start, s.End)
}

// Quad returns the mesh as a closed polygon outline (strip order 0,1,3,2)
func (s Segment) Quad() [4]vmath.Vec2 {
	return [4]vmath.Vec2{s.Mesh[0], s.Mesh[1], s.Mesh[3], s.Mesh[2]}
}

// SoundFile names the sound resource for a segment id
func SoundFile(id int) string {
	return strconv.Itoa(id) + ".wav"
}
