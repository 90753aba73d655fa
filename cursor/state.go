package cursor

import (
	"strconv"

	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/vmath"
)

// State is either free or sliding on one boundary segment.
// The zero value is Free. A sliding State can only be built from a segment
// obtained from the model, so its id is always valid.
type State struct {
	segment int
	sliding bool
}

// Free returns the unconstrained state
func Free() State {
	return State{}
}

func slidingOn(seg boundary.Segment) State {
	return State{segment: seg.ID, sliding: true}
}

// Sliding returns the segment id when sliding
func (s State) Sliding() (int, bool) {
	return s.segment, s.sliding
}

// IsFree reports whether the cursor moves unconstrained
func (s State) IsFree() bool {
	return !s.sliding
}

func (s State) String() string {
	if !s.sliding {
		return "free"
	}
	return "sliding(" + strconv.Itoa(s.segment) + ")"
}

// Crossing is emitted exactly when the cursor goes from free to sliding
type Crossing struct {
	Segment int
	Point   vmath.Vec2
}

// Stats counts controller activity since construction or the last Reset
type Stats struct {
	Steps     uint64
	Crossings uint64
	Releases  uint64
	Clamps    uint64
	Dropped   uint64
}
