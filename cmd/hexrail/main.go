package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/hexrail/audio"
	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/config"
	"github.com/lixenwraith/hexrail/engine"
	"github.com/lixenwraith/hexrail/input"
	"github.com/lixenwraith/hexrail/render"
	"github.com/lixenwraith/hexrail/terminal"
	"github.com/lixenwraith/hexrail/vmath"
)

const (
	snapshotWidth  = 800
	snapshotHeight = 800
)

var (
	configFlag   = flag.String("config", "hexrail.yaml", "Path to YAML config (missing file uses defaults)")
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256 (overrides config)")
	debugFlag    = flag.Bool("debug", false, "Write debug log to logs/hexrail.log")
	replayFlag   = flag.String("replay", "", "Replay a delta script headless instead of opening the terminal")
	snapshotFlag = flag.String("snapshot", "", "Write a PNG of the boundary and cursor trail on exit")
)

// activeScreen is finalized by the panic handler so the terminal is usable afterwards
var activeScreen tcell.Screen

func main() {
	defer func() {
		if r := recover(); r != nil {
			if activeScreen != nil {
				activeScreen.Fini()
			}
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mHEXRAIL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hexrail: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *colorFlag != "" {
		cfg.Render.ColorMode = *colorFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := setupLogging(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	b := cfg.Boundary
	model, err := boundary.NewHexagon(b.InnerRadius, b.OuterRadius, b.StartAngleDeg, b.Colors)
	if err != nil {
		return err
	}

	if *replayFlag != "" {
		return runReplay(model, *replayFlag, *snapshotFlag, os.Stdout)
	}
	return runInteractive(cfg, model, logger)
}

func runInteractive(cfg *config.Config, model *boundary.Model, logger *zap.Logger) error {
	colorMode, err := terminal.ResolveColorMode(cfg.Render.ColorMode)
	if err != nil {
		return err
	}
	if err := colorMode.Apply(); err != nil {
		return fmt.Errorf("color mode: %w", err)
	}
	logger.Info("starting", zap.Stringer("color_mode", colorMode), zap.Bool("audio", cfg.Audio.Enabled))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	activeScreen = screen
	defer screen.Fini()

	player := audio.Player(audio.Silent{})
	if cfg.Audio.Enabled {
		bank, err := audio.NewSoundBank(cfg.Audio, model.Segments(), logger)
		if err != nil {
			logger.Warn("sound bank unavailable, continuing without audio", zap.Error(err))
		} else {
			player = audio.NewPlayer(cfg.Audio, bank, logger)
		}
	}
	defer player.Close()

	game, err := engine.NewGame(screen, model, cfg, player, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.Run(ctx); err != nil {
		return err
	}

	if *snapshotFlag != "" {
		c := game.Controller()
		active := -1
		if id, ok := c.State().Sliding(); ok {
			active = id
		}
		return writeSnapshot(model, render.SnapshotOptions{
			Trail:  game.Trail(),
			Cursor: c.Position(),
			Active: active,
		}, *snapshotFlag)
	}
	return nil
}

func runReplay(model *boundary.Model, scriptPath, snapshotPath string, out io.Writer) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	deltas, err := input.ParseScript(f)
	if err != nil {
		return err
	}

	start := vmath.Vec2{}
	res := engine.Replay(model, deltas, start)
	for i, s := range res.Steps {
		line := fmt.Sprintf("%4d %v -> %v %s", i, s.Delta, s.Position, s.State)
		if s.Crossing != nil {
			line += fmt.Sprintf(" crossed %d", s.Crossing.Segment)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "final %v, steps %d, crossings %d, releases %d, clamps %d, dropped %d\n",
		res.Final, res.Stats.Steps, res.Stats.Crossings, res.Stats.Releases, res.Stats.Clamps, res.Stats.Dropped)

	if snapshotPath == "" {
		return nil
	}
	active := -1
	if len(res.Steps) > 0 {
		if id, ok := res.Steps[len(res.Steps)-1].State.Sliding(); ok {
			active = id
		}
	}
	return writeSnapshot(model, render.SnapshotOptions{
		Trail:  res.Trail(start),
		Cursor: res.Final,
		Active: active,
	}, snapshotPath)
}

func writeSnapshot(model *boundary.Model, opts render.SnapshotOptions, path string) error {
	img, err := render.Snapshot(model, opts, snapshotWidth, snapshotHeight)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
