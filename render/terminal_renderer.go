package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/cursor"
	"github.com/lixenwraith/hexrail/vmath"
)

const (
	bandRune       = '░'
	activeBandRune = '▓'
	cursorRune     = '●'

	helpText = " hjkl/arrows move  HJKL fast  mouse drag  r reset  q quit"
)

// Frame is the read-only view of one committed controller update
type Frame struct {
	Position vmath.Vec2
	State    cursor.State
	Stats    cursor.Stats
	Message  string
}

// TerminalRenderer draws the boundary, the cursor and a status bar on a tcell screen
type TerminalRenderer struct {
	screen   tcell.Screen
	model    *boundary.Model
	palette  SegmentPalette
	viewport Viewport
}

// NewTerminalRenderer creates a renderer fitted to the current screen size
func NewTerminalRenderer(screen tcell.Screen, model *boundary.Model) (*TerminalRenderer, error) {
	names := make([]string, 0, model.Len())
	for _, seg := range model.Segments() {
		names = append(names, seg.Color)
	}
	palette, err := NewSegmentPalette(names)
	if err != nil {
		return nil, err
	}

	r := &TerminalRenderer{
		screen:  screen,
		model:   model,
		palette: palette,
	}
	r.Resize()
	return r, nil
}

// Resize refits the viewport to the screen
func (r *TerminalRenderer) Resize() {
	w, h := r.screen.Size()
	r.viewport = NewViewport(w, h, r.model.Radius())
}

// Viewport returns the current world to cell mapping
func (r *TerminalRenderer) Viewport() Viewport {
	return r.viewport
}

// RenderFrame draws the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.fill(defaultStyle)

	active, sliding := f.State.Sliding()

	// Active segment last so shared corners show its colour
	for _, seg := range r.model.Segments() {
		if sliding && seg.ID == active {
			continue
		}
		r.drawSegment(seg, false, defaultStyle)
	}
	if seg, ok := r.model.Segment(active); sliding && ok {
		r.drawSegment(seg, true, defaultStyle)
	}

	r.drawCursor(f.Position, defaultStyle)
	r.drawStatusBar(f)

	r.screen.Show()
}

func (r *TerminalRenderer) fill(style tcell.Style) {
	w, h := r.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawSegment rasterizes the segment line and both mesh edges of its band
func (r *TerminalRenderer) drawSegment(seg boundary.Segment, active bool, base tcell.Style) {
	ch := bandRune
	if active {
		ch = activeBandRune
	}
	style := base.Foreground(ToTcell(r.palette.Color(seg.ID, active)))

	r.drawLine(seg.Mesh[1], seg.Mesh[3], ch, style)
	r.drawLine(seg.Start, seg.End, ch, style)
}

func (r *TerminalRenderer) drawLine(a, b vmath.Vec2, ch rune, style tcell.Style) {
	x1, y1 := r.viewport.ToCellF(a)
	x2, y2 := r.viewport.ToCellF(b)
	vmath.Traverse(x1, y1, x2, y2, func(x, y int) bool {
		if r.viewport.InPlayfield(x, y) {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		return true
	})
}

func (r *TerminalRenderer) drawCursor(pos vmath.Vec2, base tcell.Style) {
	x, y := r.viewport.ToCell(pos)
	if !r.viewport.InPlayfield(x, y) {
		return
	}
	r.screen.SetContent(x, y, cursorRune, nil, base.Foreground(RgbCursor))
}

func (r *TerminalRenderer) drawStatusBar(f Frame) {
	w, h := r.screen.Size()
	if h < 1 {
		return
	}
	y := h - 1
	barStyle := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText)
	helpStyle := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHelpText)

	status := fmt.Sprintf(" %s %s  cross:%d rel:%d clamp:%d drop:%d ",
		f.State, f.Position, f.Stats.Crossings, f.Stats.Releases, f.Stats.Clamps, f.Stats.Dropped)
	if f.Message != "" {
		status += f.Message + " "
	}

	x := drawText(r.screen, 0, y, w, status, barStyle)
	drawText(r.screen, x, y, w, helpText, helpStyle)
}

// drawText writes s from column x, clipped at width, and returns the next free column
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= width {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
