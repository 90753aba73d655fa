package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/config"
	"github.com/lixenwraith/hexrail/vmath"
)

type recordingPlayer struct {
	mu     sync.Mutex
	played []int
	closed bool
}

func (p *recordingPlayer) Play(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, id)
	return true
}

func (p *recordingPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *recordingPlayer) ids() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.played...)
}

func newTestModel(t *testing.T) *boundary.Model {
	t.Helper()
	m, err := boundary.NewHexagon(200, 250, 90, nil)
	require.NoError(t, err)
	return m
}

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen, *recordingPlayer) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Render.FrameInterval = time.Millisecond
	player := &recordingPlayer{}

	g, err := NewGame(screen, newTestModel(t), cfg, player, zaptest.NewLogger(t))
	require.NoError(t, err)
	return g, screen, player
}

func runGame(t *testing.T, g *Game) <-chan error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()
	return done
}

func wait(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("game did not stop")
	}
}

func TestKeysDriveCursorOntoBoundary(t *testing.T) {
	g, screen, player := newTestGame(t)
	done := runGame(t, g)

	// 3 x 40 down from the origin crosses the bottom edge at y = -100
	for i := 0; i < 3; i++ {
		screen.InjectKey(tcell.KeyRune, 'J', tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	wait(t, done)

	c := g.Controller()
	id, sliding := c.State().Sliding()
	require.True(t, sliding)
	assert.Equal(t, 1, id)
	assert.InDelta(t, 0, c.Position().X, 1e-9)
	assert.InDelta(t, -100, c.Position().Y, 1e-9)
	assert.Equal(t, []int{1}, player.ids())
	assert.Equal(t, uint64(1), c.Stats().Crossings)

	trail := g.Trail()
	require.NotEmpty(t, trail)
	assert.Equal(t, vmath.Vec2{}, trail[0])
}

func TestResetRecentres(t *testing.T) {
	g, screen, player := newTestGame(t)
	done := runGame(t, g)

	screen.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	wait(t, done)

	assert.Equal(t, vmath.Vec2{}, g.Controller().Position())
	assert.True(t, g.Controller().State().IsFree())
	assert.Empty(t, player.ids())
	assert.Equal(t, []vmath.Vec2{{}}, g.Trail())
}

func TestMouseMotion(t *testing.T) {
	g, screen, _ := newTestGame(t)
	size := g.renderer.Viewport().CellSize()
	done := runGame(t, g)

	screen.InjectMouse(40, 11, tcell.ButtonNone, tcell.ModNone)
	screen.InjectMouse(42, 11, tcell.ButtonNone, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	wait(t, done)

	pos := g.Controller().Position()
	assert.InDelta(t, 2*size.X, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
}

func TestRunStopsOnCancel(t *testing.T) {
	g, _, _ := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	wait(t, done)
}

func TestRenderShowsStatus(t *testing.T) {
	g, screen, _ := newTestGame(t)
	done := runGame(t, g)

	screen.InjectKey(tcell.KeyRune, 'J', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'J', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'J', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	wait(t, done)

	// the final flush happened after the last draw, so draw once more
	g.draw()
	var status []rune
	for x := 0; x < 80; x++ {
		ch, _, _, _ := screen.GetContent(x, 23)
		status = append(status, ch)
	}
	assert.Contains(t, string(status), "sliding(1)")
	assert.Contains(t, string(status), "hit 1")
}

func TestNewGameRejectsBadColors(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	m, err := boundary.NewHexagon(200, 250, 90, []string{"red", "green", "not-a-colour"})
	require.NoError(t, err)
	_, err = NewGame(screen, m, config.Default(), nil, nil)
	assert.Error(t, err)
}
