package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearColorEnv(t *testing.T) {
	t.Helper()
	for _, name := range append([]string{"COLORTERM", "TERM"}, truecolorEnv...) {
		t.Setenv(name, "")
	}
}

func TestDetectColorMode(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("TERM", "xterm-256color")
	assert.Equal(t, ColorMode256, DetectColorMode())

	t.Setenv("COLORTERM", "truecolor")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())

	clearColorEnv(t)
	t.Setenv("WEZTERM_PANE", "0")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())

	clearColorEnv(t)
	t.Setenv("TERM", "xterm-direct")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())
}

func TestResolveColorMode(t *testing.T) {
	clearColorEnv(t)

	m, err := ResolveColorMode("256")
	require.NoError(t, err)
	assert.Equal(t, ColorMode256, m)

	m, err = ResolveColorMode("24bit")
	require.NoError(t, err)
	assert.Equal(t, ColorModeTrueColor, m)
	assert.Equal(t, "truecolor", m.String())

	m, err = ResolveColorMode("auto")
	require.NoError(t, err)
	assert.Equal(t, ColorMode256, m)

	_, err = ResolveColorMode("16")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Setenv("TCELL_TRUECOLOR", "")

	require.NoError(t, ColorMode256.Apply())
	assert.Equal(t, "disable", os.Getenv("TCELL_TRUECOLOR"))

	require.NoError(t, ColorModeTrueColor.Apply())
	_, set := os.LookupEnv("TCELL_TRUECOLOR")
	assert.False(t, set)
}

func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	assert.Contains(t, out, "\x1b[?25h")
	assert.Contains(t, out, "\x1b[?1049l")
	assert.Contains(t, out, "\x1b[?1003l")
}
