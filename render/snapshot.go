package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/vmath"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"
)

const (
	trailWidthPx    = 2.0
	cursorRadiusPx  = 6.0
	cursorSegments  = 24
	snapshotPadding = 1.1
)

// SnapshotOptions selects what a snapshot draws besides the boundary
type SnapshotOptions struct {
	Trail  []vmath.Vec2
	Cursor vmath.Vec2
	Active int // segment drawn highlighted, negative for none
}

// Snapshot rasterizes the boundary bands, a trail polyline and the cursor into a w x h image
func Snapshot(model *boundary.Model, opts SnapshotOptions, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: snapshot size %dx%d", w, h)
	}

	names := make([]string, 0, model.Len())
	for _, seg := range model.Segments() {
		names = append(names, seg.Color)
	}
	palette, err := NewSegmentPalette(names)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(ImgBackground)), image.Point{}, draw.Src)

	scale := math.Min(float64(w), float64(h)) / (2 * model.Radius() * snapshotPadding)
	toPx := func(p vmath.Vec2) (float32, float32) {
		return float32(float64(w)/2 + p.X*scale), float32(float64(h)/2 - p.Y*scale)
	}

	for _, seg := range model.Segments() {
		z := vector.NewRasterizer(w, h)
		quad := seg.Quad()
		x, y := toPx(quad[0])
		z.MoveTo(x, y)
		for _, p := range quad[1:] {
			x, y = toPx(p)
			z.LineTo(x, y)
		}
		z.ClosePath()
		fill(z, img, palette.Color(seg.ID, seg.ID == opts.Active))
	}

	if len(opts.Trail) > 1 {
		z := vector.NewRasterizer(w, h)
		for i := 1; i < len(opts.Trail); i++ {
			ax, ay := toPx(opts.Trail[i-1])
			bx, by := toPx(opts.Trail[i])
			strokeSegment(z, ax, ay, bx, by, trailWidthPx)
		}
		fill(z, img, ImgTrail)
	}

	z := vector.NewRasterizer(w, h)
	cx, cy := toPx(opts.Cursor)
	disc(z, cx, cy, cursorRadiusPx)
	fill(z, img, ImgCursor)

	return img, nil
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

func fill(z *vector.Rasterizer, dst *image.RGBA, c colorful.Color) {
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(rgba(c)), image.Point{})
}

// strokeSegment adds a quad of the given width around a-b; zero-length pieces are skipped
func strokeSegment(z *vector.Rasterizer, ax, ay, bx, by, width float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func disc(z *vector.Rasterizer, cx, cy, r float32) {
	for i := 0; i <= cursorSegments; i++ {
		a := 2 * math.Pi * float64(i) / cursorSegments
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
