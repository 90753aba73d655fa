package cursor

import (
	"math"

	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/vmath"
)

// Controller owns the cursor position and state and applies motion deltas
// against a fixed boundary model. Not safe for concurrent use; one loop drives it.
type Controller struct {
	model *boundary.Model
	pos   vmath.Vec2
	state State
	stats Stats
}

// New creates a free controller at start
func New(model *boundary.Model, start vmath.Vec2) *Controller {
	return &Controller{
		model: model,
		pos:   start,
	}
}

// Position returns the committed cursor position
func (c *Controller) Position() vmath.Vec2 {
	return c.pos
}

// State returns the committed cursor state
func (c *Controller) State() State {
	return c.state
}

// Stats returns activity counters
func (c *Controller) Stats() Stats {
	return c.stats
}

// Model returns the boundary model the controller constrains against
func (c *Controller) Model() *boundary.Model {
	return c.model
}

// Reset places the cursor at pos in the free state and clears counters
func (c *Controller) Reset(pos vmath.Vec2) {
	c.pos = pos
	c.state = Free()
	c.stats = Stats{}
}

// Update applies raw input deltas in order and returns the crossings they produced
func (c *Controller) Update(raws []vmath.Vec2) []Crossing {
	var crossings []Crossing
	for _, raw := range raws {
		if cr, ok := c.Move(raw); ok {
			crossings = append(crossings, cr)
		}
	}
	return crossings
}

// Move applies one raw input delta; input devices report Y growing downward
func (c *Controller) Move(raw vmath.Vec2) (Crossing, bool) {
	return c.Step(vmath.V2(raw.X, -raw.Y))
}

// Step applies one world-space delta and reports a crossing if one occurred
func (c *Controller) Step(delta vmath.Vec2) (Crossing, bool) {
	c.stats.Steps++

	if vmath.V2IsZero(delta) {
		return Crossing{}, false
	}

	if id, ok := c.state.Sliding(); ok {
		return c.stepSliding(id, delta)
	}
	return c.stepFree(delta)
}

func (c *Controller) stepFree(delta vmath.Vec2) (Crossing, bool) {
	future := vmath.V2Add(c.pos, delta)

	triggered := false
	for id := 0; id < c.model.Len(); id++ {
		seg, _ := c.model.Segment(id)
		if !seg.Outside(future) {
			continue
		}
		triggered = true

		hit, ok := vmath.SegmentIntersect(c.pos, future, seg.Start, seg.End)
		if !ok {
			// Parallel motion: drop the frame
			c.stats.Dropped++
			return Crossing{}, false
		}
		if !hit.OnSegment() {
			// Crossed this line beyond the segment's extent, another segment owns the crossing
			continue
		}

		c.pos = onLine(seg, hit.Point)
		c.state = slidingOn(seg)
		c.stats.Crossings++
		return Crossing{Segment: seg.ID, Point: c.pos}, true
	}

	if triggered {
		c.stats.Dropped++
		return Crossing{}, false
	}

	c.pos = future
	return Crossing{}, false
}

func (c *Controller) stepSliding(id int, delta vmath.Vec2) (Crossing, bool) {
	seg, _ := c.model.Segment(id)

	next := vmath.V2Add(c.pos, delta)
	if seg.Side(next) < -exitTolerance(seg, c.pos, delta) {
		// Released exactly where free motion would put it, even past a neighbouring segment
		c.pos = next
		c.state = Free()
		c.stats.Releases++
		return Crossing{}, false
	}

	axis := dominantAxis(seg.Between)
	aligned := vmath.V2ProjectOnto(
		vmath.V2Rotate(delta, vmath.V2AngleBetween(axis, seg.Between)),
		seg.Between,
	)
	future := onLine(seg, vmath.V2Add(c.pos, aligned))

	lineDist := seg.Length()
	pastEnd := lineDist < vmath.V2Distance(future, seg.Start)
	pastStart := lineDist < vmath.V2Distance(future, seg.End)
	switch {
	case pastEnd && pastStart:
		// Overshot by more than the segment length, keep the nearer endpoint
		if vmath.V2Distance(future, seg.End) < vmath.V2Distance(future, seg.Start) {
			future = seg.End
		} else {
			future = seg.Start
		}
		c.stats.Clamps++
	case pastEnd:
		future = seg.End
		c.stats.Clamps++
	case pastStart:
		future = seg.Start
		c.stats.Clamps++
	}

	c.pos = future
	return Crossing{}, false
}

// onLine returns the orthogonal projection of p onto the segment's line
func onLine(seg boundary.Segment, p vmath.Vec2) vmath.Vec2 {
	return vmath.V2Add(seg.Start, vmath.V2ProjectOnto(vmath.V2Sub(p, seg.Start), seg.Between))
}

// exitTolerance scales the release threshold with the magnitudes entering the side test,
// so rounding on a motion along the line never reads as a move back inside
func exitTolerance(seg boundary.Segment, pos, delta vmath.Vec2) float64 {
	scale := vmath.V2Len(delta) + vmath.V2Distance(pos, seg.Start)
	return vmath.ParallelEpsilon * vmath.V2Len(seg.Between) * scale
}

// dominantAxis returns (±1, 0) or (0, ±1) along the larger component of v
func dominantAxis(v vmath.Vec2) vmath.Vec2 {
	if math.Abs(v.X) < math.Abs(v.Y) {
		return vmath.V2(0, math.Copysign(1, v.Y))
	}
	return vmath.V2(math.Copysign(1, v.X), 0)
}
