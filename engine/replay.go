package engine

import (
	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/cursor"
	"github.com/lixenwraith/hexrail/vmath"
)

// ReplayStep records the committed result of one raw delta
type ReplayStep struct {
	Delta    vmath.Vec2
	Position vmath.Vec2
	State    cursor.State
	Crossing *cursor.Crossing
}

// ReplayResult is the outcome of a headless run
type ReplayResult struct {
	Steps     []ReplayStep
	Crossings []cursor.Crossing
	Stats     cursor.Stats
	Final     vmath.Vec2
}

// Replay feeds raw deltas (input convention, Y down) through a fresh controller starting at start
func Replay(model *boundary.Model, deltas []vmath.Vec2, start vmath.Vec2) ReplayResult {
	c := cursor.New(model, start)
	res := ReplayResult{Steps: make([]ReplayStep, 0, len(deltas))}

	for _, d := range deltas {
		step := ReplayStep{Delta: d}
		if crossing, ok := c.Move(d); ok {
			res.Crossings = append(res.Crossings, crossing)
			step.Crossing = &crossing
		}
		step.Position = c.Position()
		step.State = c.State()
		res.Steps = append(res.Steps, step)
	}

	res.Stats = c.Stats()
	res.Final = c.Position()
	return res
}

// Trail returns the start followed by every committed position
func (r ReplayResult) Trail(start vmath.Vec2) []vmath.Vec2 {
	trail := make([]vmath.Vec2, 0, len(r.Steps)+1)
	trail = append(trail, start)
	for _, s := range r.Steps {
		trail = append(trail, s.Position)
	}
	return trail
}
