package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hexrail/vmath"
)

// ActionType classifies what an event asks the loop to do
type ActionType uint8

const (
	ActionNone   ActionType = iota
	ActionMove              // Delta holds a raw motion delta (Y down)
	ActionReset             // recentre the cursor
	ActionQuit              // leave the loop
	ActionResize            // screen size changed
)

func (a ActionType) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionReset:
		return "reset"
	case ActionQuit:
		return "quit"
	case ActionResize:
		return "resize"
	default:
		return "none"
	}
}

// Action is the result of translating one event
type Action struct {
	Type  ActionType
	Delta vmath.Vec2
}

// step is a unit direction in input convention, scaled by the small or large key step
type step struct {
	dir   vmath.Vec2
	large bool
}

// BindingTable maps keys to actions
type BindingTable struct {
	runes map[rune]step
	keys  map[tcell.Key]step
	quit  map[rune]bool
	reset map[rune]bool
}

// DefaultBindings returns vi-style movement, arrows, q to quit and r to reset
func DefaultBindings() *BindingTable {
	left := vmath.V2(-1, 0)
	right := vmath.V2(1, 0)
	up := vmath.V2(0, -1)
	down := vmath.V2(0, 1)

	return &BindingTable{
		runes: map[rune]step{
			'h': {left, false},
			'j': {down, false},
			'k': {up, false},
			'l': {right, false},

			'H': {left, true},
			'J': {down, true},
			'K': {up, true},
			'L': {right, true},
		},
		keys: map[tcell.Key]step{
			tcell.KeyLeft:  {left, false},
			tcell.KeyDown:  {down, false},
			tcell.KeyUp:    {up, false},
			tcell.KeyRight: {right, false},
		},
		quit:  map[rune]bool{'q': true},
		reset: map[rune]bool{'r': true},
	}
}
