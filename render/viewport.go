package render

import (
	"math"

	"github.com/lixenwraith/hexrail/vmath"
)

const (
	// CellAspect is the height of a terminal cell in units of its width
	CellAspect = 2.0
	// StatusRows are reserved at the bottom of the screen
	StatusRows = 1

	fitMargin = 1.08
)

// Viewport maps world space (origin centred, Y up) onto terminal cells (Y down)
type Viewport struct {
	Width, Height int
	cellW, cellH  float64 // world units per column and per row
	cx, cy        float64
}

// NewViewport fits a circle of the given world radius into a width x height screen
func NewViewport(width, height int, radius float64) Viewport {
	cols := math.Max(float64(width), 1)
	rows := math.Max(float64(height-StatusRows), 1)

	diameter := 2 * radius * fitMargin
	cellW := math.Max(diameter/cols, diameter/(rows*CellAspect))
	if cellW <= 0 {
		cellW = 1
	}

	return Viewport{
		Width:  width,
		Height: height,
		cellW:  cellW,
		cellH:  cellW * CellAspect,
		cx:     cols / 2,
		cy:     rows / 2,
	}
}

// ToCellF returns fractional cell coordinates of world point p
func (v Viewport) ToCellF(p vmath.Vec2) (float64, float64) {
	return v.cx + p.X/v.cellW, v.cy - p.Y/v.cellH
}

// ToCell returns the cell containing world point p
func (v Viewport) ToCell(p vmath.Vec2) (int, int) {
	x, y := v.ToCellF(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

// ToWorld returns the world point at the centre of a cell
func (v Viewport) ToWorld(col, row int) vmath.Vec2 {
	return vmath.V2(
		(float64(col)+0.5-v.cx)*v.cellW,
		(v.cy-float64(row)-0.5)*v.cellH,
	)
}

// CellSize returns world units per column and per row
func (v Viewport) CellSize() vmath.Vec2 {
	return vmath.V2(v.cellW, v.cellH)
}

// InPlayfield reports whether a cell lies above the status rows
func (v Viewport) InPlayfield(col, row int) bool {
	return col >= 0 && col < v.Width && row >= 0 && row < v.Height-StatusRows
}
