package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/hexrail/vmath"
)

func pixel(img *image.RGBA, model func(vmath.Vec2) (int, int), p vmath.Vec2) (uint8, uint8, uint8) {
	x, y := model(p)
	c := img.RGBAAt(x, y)
	return c.R, c.G, c.B
}

func TestSnapshot(t *testing.T) {
	model := newTestModel(t)
	const size = 200
	scale := float64(size) / (2 * model.Radius() * snapshotPadding)
	toPx := func(p vmath.Vec2) (int, int) {
		return int(size/2 + p.X*scale), int(size/2 - p.Y*scale)
	}

	img, err := Snapshot(model, SnapshotOptions{Cursor: vmath.V2(0, -90), Active: -1}, size, size)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, size, size), img.Bounds())

	// centre of the loop is background
	r, g, b := pixel(img, toPx, vmath.V2(40, 40))
	assert.Equal(t, [3]uint8{26, 27, 38}, [3]uint8{r, g, b})

	// cursor disc
	r, g, b = pixel(img, toPx, vmath.V2(0, -90))
	assert.InDelta(t, 255, r, 2)
	assert.InDelta(t, 105, g, 2)
	assert.InDelta(t, 180, b, 2)

	// segment 0 band is red
	seg, _ := model.Segment(0)
	var centroid vmath.Vec2
	for _, p := range seg.Mesh {
		centroid = vmath.V2Add(centroid, vmath.V2Scale(p, 0.25))
	}
	r, g, b = pixel(img, toPx, centroid)
	assert.Greater(t, r, uint8(200))
	assert.Less(t, g, uint8(100))
	assert.Less(t, b, uint8(100))
}

func TestSnapshotTrailAndActive(t *testing.T) {
	model := newTestModel(t)
	trail := []vmath.Vec2{vmath.V2(-100, 0), vmath.V2(100, 0)}

	plain, err := Snapshot(model, SnapshotOptions{Cursor: vmath.V2(0, -90), Active: -1}, 200, 200)
	require.NoError(t, err)
	lit, err := Snapshot(model, SnapshotOptions{Trail: trail, Cursor: vmath.V2(0, -90), Active: 0}, 200, 200)
	require.NoError(t, err)

	assert.NotEqual(t, plain.Pix, lit.Pix)
	// trail crosses the centre row
	c := lit.RGBAAt(100, 100)
	assert.InDelta(t, 191, c.R, 2)
}

func TestSnapshotRejectsEmptySize(t *testing.T) {
	_, err := Snapshot(newTestModel(t), SnapshotOptions{}, 0, 10)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	img, err := Snapshot(newTestModel(t), SnapshotOptions{Active: -1}, 64, 48)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), decoded.Bounds())
}
