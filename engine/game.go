package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/hexrail/audio"
	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/config"
	"github.com/lixenwraith/hexrail/cursor"
	"github.com/lixenwraith/hexrail/input"
	"github.com/lixenwraith/hexrail/render"
	"github.com/lixenwraith/hexrail/vmath"
)

const (
	eventBuffer = 100
	trailLength = 512
)

var errQuit = errors.New("quit")

// Game wires the screen, the cursor controller and its collaborators into one control loop
type Game struct {
	screen     tcell.Screen
	controller *cursor.Controller
	renderer   *render.TerminalRenderer
	translator *input.Translator
	player     audio.Player
	log        *zap.Logger

	frameInterval time.Duration
	trail         []vmath.Vec2
	pending       []vmath.Vec2
	message       string
}

// NewGame creates a game on an initialized screen. The cursor starts at the origin.
func NewGame(screen tcell.Screen, model *boundary.Model, cfg *config.Config, player audio.Player, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if player == nil {
		player = audio.Silent{}
	}

	renderer, err := render.NewTerminalRenderer(screen, model)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	g := &Game{
		screen:        screen,
		controller:    cursor.New(model, vmath.Vec2{}),
		renderer:      renderer,
		translator:    input.NewTranslator(cfg.Input, renderer.Viewport()),
		player:        player,
		log:           log,
		frameInterval: cfg.Render.FrameInterval,
	}
	g.trail = append(g.trail, vmath.Vec2{})
	return g, nil
}

// Controller returns the cursor controller. Only safe to call while Run is not executing.
func (g *Game) Controller() *cursor.Controller {
	return g.controller
}

// Trail returns a copy of the recent committed positions, oldest first
func (g *Game) Trail() []vmath.Vec2 {
	out := make([]vmath.Vec2, len(g.trail))
	copy(out, g.trail)
	return out
}

// Run processes events until quit or ctx is done.
// One goroutine polls the screen; the loop goroutine is the only writer of controller state.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return g.poll(gctx, events)
	})
	grp.Go(func() error {
		return g.loop(gctx, events)
	})
	grp.Go(func() error {
		<-gctx.Done()
		// Wake the poller blocked in PollEvent
		_ = g.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	err := grp.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (g *Game) poll(ctx context.Context, events chan<- tcell.Event) error {
	for {
		ev := g.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

func (g *Game) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(g.frameInterval)
	defer ticker.Stop()

	g.log.Info("loop started", zap.Duration("frame_interval", g.frameInterval))
	g.draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !g.handle(ev) {
				g.flush()
				g.log.Info("quit", zap.Stringer("state", g.controller.State()), zap.Any("stats", g.controller.Stats()))
				return errQuit
			}

		case <-ticker.C:
			g.flush()
			g.draw()
		}
	}
}

// handle applies one event and returns false when the loop should exit
func (g *Game) handle(ev tcell.Event) bool {
	a := g.translator.Translate(ev)
	switch a.Type {
	case input.ActionQuit:
		return false
	case input.ActionMove:
		g.pending = append(g.pending, a.Delta)
	case input.ActionReset:
		g.pending = g.pending[:0]
		g.controller.Reset(vmath.Vec2{})
		g.trail = append(g.trail[:0], vmath.Vec2{})
		g.message = "reset"
		g.log.Debug("reset")
	case input.ActionResize:
		g.screen.Sync()
		g.renderer.Resize()
		g.translator.SetViewport(g.renderer.Viewport())
		w, h := g.screen.Size()
		g.log.Debug("resize", zap.Int("width", w), zap.Int("height", h))
	}
	return true
}

// flush applies the deltas gathered since the last tick as one ordered batch
func (g *Game) flush() {
	if len(g.pending) == 0 {
		return
	}
	before := g.controller.State()
	crossings := g.controller.Update(g.pending)
	g.pending = g.pending[:0]

	for _, c := range crossings {
		played := g.player.Play(c.Segment)
		g.message = fmt.Sprintf("hit %d", c.Segment)
		g.log.Debug("crossing",
			zap.Int("segment", c.Segment),
			zap.Stringer("point", c.Point),
			zap.Bool("played", played),
		)
	}
	if after := g.controller.State(); !before.IsFree() && after.IsFree() && len(crossings) == 0 {
		g.log.Debug("released", zap.Stringer("from", before), zap.Stringer("position", g.controller.Position()))
	}

	g.trail = append(g.trail, g.controller.Position())
	if len(g.trail) > trailLength {
		g.trail = append(g.trail[:0], g.trail[len(g.trail)-trailLength:]...)
	}
}

func (g *Game) draw() {
	g.renderer.RenderFrame(render.Frame{
		Position: g.controller.Position(),
		State:    g.controller.State(),
		Stats:    g.controller.Stats(),
		Message:  g.message,
	})
}
