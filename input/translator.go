package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hexrail/config"
	"github.com/lixenwraith/hexrail/render"
	"github.com/lixenwraith/hexrail/vmath"
)

// Translator turns tcell events into raw motion deltas in input convention (Y down)
type Translator struct {
	cfg      config.Input
	bindings *BindingTable
	cellSize vmath.Vec2 // world units per column and per row

	mouseX, mouseY int
	anchored       bool
}

// NewTranslator creates a translator for the given viewport
func NewTranslator(cfg config.Input, viewport render.Viewport) *Translator {
	return &Translator{
		cfg:      cfg,
		bindings: DefaultBindings(),
		cellSize: viewport.CellSize(),
	}
}

// SetViewport updates the cell scale after a resize and re-anchors the mouse
func (t *Translator) SetViewport(viewport render.Viewport) {
	t.cellSize = viewport.CellSize()
	t.anchored = false
}

// Translate converts one event into an action
func (t *Translator) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(ev)
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	case *tcell.EventResize:
		return Action{Type: ActionResize}
	}
	return Action{}
}

func (t *Translator) translateKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Type: ActionQuit}
	case tcell.KeyRune:
		r := ev.Rune()
		if t.bindings.quit[r] {
			return Action{Type: ActionQuit}
		}
		if t.bindings.reset[r] {
			t.anchored = false
			return Action{Type: ActionReset}
		}
		if s, ok := t.bindings.runes[r]; ok {
			return t.keyMove(s)
		}
	default:
		if s, ok := t.bindings.keys[ev.Key()]; ok {
			return t.keyMove(s)
		}
	}
	return Action{}
}

func (t *Translator) keyMove(s step) Action {
	size := t.cfg.KeyStep
	if s.large {
		size = t.cfg.KeyStepLarge
	}
	return Action{Type: ActionMove, Delta: vmath.V2Scale(s.dir, size)}
}

// translateMouse reports the cell difference since the previous mouse event, scaled to world units.
// The first event after construction, resize or reset only anchors.
func (t *Translator) translateMouse(ev *tcell.EventMouse) Action {
	x, y := ev.Position()
	if !t.anchored {
		t.mouseX, t.mouseY = x, y
		t.anchored = true
		return Action{}
	}

	dx, dy := x-t.mouseX, y-t.mouseY
	t.mouseX, t.mouseY = x, y
	if dx == 0 && dy == 0 {
		return Action{}
	}

	delta := vmath.V2(
		float64(dx)*t.cellSize.X*t.cfg.MouseGain,
		float64(dy)*t.cellSize.Y*t.cfg.MouseGain,
	)
	return Action{Type: ActionMove, Delta: delta}
}
