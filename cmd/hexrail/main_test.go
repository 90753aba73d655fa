package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/hexrail/boundary"
)

func TestRunReplay(t *testing.T) {
	model, err := boundary.NewHexagon(200, 250, 90, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	script := filepath.Join(dir, "walk.txt")
	require.NoError(t, os.WriteFile(script, []byte("0 50\n0 80 # onto the bottom edge\n30 0\n"), 0o644))
	snapshot := filepath.Join(dir, "walk.png")

	var out bytes.Buffer
	require.NoError(t, runReplay(model, script, snapshot, &out))

	assert.Contains(t, out.String(), "crossed 1")
	assert.Contains(t, out.String(), "crossings 1")

	f, err := os.Open(snapshot)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, snapshotWidth, img.Bounds().Dx())
}

func TestRunReplayErrors(t *testing.T) {
	model, err := boundary.NewHexagon(200, 250, 90, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Error(t, runReplay(model, filepath.Join(t.TempDir(), "missing.txt"), "", &out))

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1 2 3\n"), 0o644))
	assert.Error(t, runReplay(model, bad, "", &out))
}
