package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbCursor     = tcell.NewRGBColor(255, 105, 180) // Pink
	RgbStatusBar  = tcell.NewRGBColor(200, 200, 200)
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbHelpText   = tcell.NewRGBColor(120, 120, 140)
)

// Background and cursor in image space
var (
	ImgBackground = colorful.Color{R: 26.0 / 255, G: 27.0 / 255, B: 38.0 / 255}
	ImgCursor     = colorful.Color{R: 1, G: 105.0 / 255, B: 180.0 / 255}
	ImgTrail      = colorful.Color{R: 0.75, G: 0.75, B: 0.75}
)

// named colours accepted in configuration besides #rrggbb
var namedColors = map[string]string{
	"red":     "#ff3030",
	"green":   "#30d030",
	"blue":    "#3070ff",
	"yellow":  "#ffe030",
	"cyan":    "#30e0e0",
	"magenta": "#e030e0",
	"orange":  "#ffa500",
	"white":   "#ffffff",
	"pink":    "#ff69b4",
}

const highlightBlend = 0.45

// ParseColor accepts a colour name or #rrggbb hex
func ParseColor(s string) (colorful.Color, error) {
	hex := strings.ToLower(strings.TrimSpace(s))
	if named, ok := namedColors[hex]; ok {
		hex = named
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("render: color %q: %w", s, err)
	}
	return c, nil
}

// Highlight lightens c towards white in Lab space, used for the active segment
func Highlight(c colorful.Color) colorful.Color {
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, highlightBlend).Clamped()
}

// ToTcell converts to a tcell RGB colour
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// SegmentPalette holds the normal and active colour of every segment, by id
type SegmentPalette struct {
	Normal []colorful.Color
	Active []colorful.Color
}

// NewSegmentPalette parses one colour per segment
func NewSegmentPalette(names []string) (SegmentPalette, error) {
	p := SegmentPalette{
		Normal: make([]colorful.Color, len(names)),
		Active: make([]colorful.Color, len(names)),
	}
	for i, name := range names {
		c, err := ParseColor(name)
		if err != nil {
			return SegmentPalette{}, err
		}
		p.Normal[i] = c
		p.Active[i] = Highlight(c)
	}
	return p, nil
}

// Color returns the colour for segment id, lightened when active
func (p SegmentPalette) Color(id int, active bool) colorful.Color {
	if id < 0 || id >= len(p.Normal) {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	if active {
		return p.Active[id]
	}
	return p.Normal[id]
}
