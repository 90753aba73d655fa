package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file
const (
	EnvAudioEnabled = "HEXRAIL_AUDIO_ENABLED"
	EnvMasterVolume = "HEXRAIL_MASTER_VOLUME" // 0-100
	EnvSampleRate   = "HEXRAIL_SAMPLE_RATE"
	EnvSoundDir     = "HEXRAIL_SOUND_DIR"
	EnvColors       = "HEXRAIL_COLORS" // comma separated
	EnvColorMode    = "HEXRAIL_COLOR_MODE"
	EnvDebug        = "HEXRAIL_DEBUG"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the full application configuration
type Config struct {
	Boundary Boundary `yaml:"boundary"`
	Input    Input    `yaml:"input"`
	Audio    Audio    `yaml:"audio"`
	Render   Render   `yaml:"render"`
	Debug    bool     `yaml:"debug"`
}

// Boundary describes the hexagonal point loop
type Boundary struct {
	InnerRadius   float64  `yaml:"inner_radius"`
	OuterRadius   float64  `yaml:"outer_radius"`
	StartAngleDeg float64  `yaml:"start_angle_deg"`
	Colors        []string `yaml:"colors"`
}

// Input tunes how device events become motion deltas
type Input struct {
	MouseGain    float64 `yaml:"mouse_gain"`
	KeyStep      float64 `yaml:"key_step"`
	KeyStepLarge float64 `yaml:"key_step_large"`
}

// Audio configures crossing sounds
type Audio struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SampleRate   int     `yaml:"sample_rate"`
	SoundDir     string  `yaml:"sound_dir"`
}

// Render configures terminal output
type Render struct {
	ColorMode     string        `yaml:"color"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Boundary: Boundary{
			InnerRadius:   200,
			OuterRadius:   250,
			StartAngleDeg: 90,
			Colors:        []string{"red", "green", "blue"},
		},
		Input: Input{
			MouseGain:    1,
			KeyStep:      10,
			KeyStepLarge: 40,
		},
		Audio: Audio{
			Enabled:      true,
			MasterVolume: 0.5,
			SampleRate:   44100,
			SoundDir:     "sounds",
		},
		Render: Render{
			ColorMode:     "auto",
			FrameInterval: 16 * time.Millisecond,
		},
	}
}

// Load reads a YAML file over the defaults, then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("open config: %w", err)
		default:
			defer f.Close()
			if err := cfg.Decode(f); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode merges YAML from r into cfg
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from HEXRAIL_* variables; malformed values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	if v := os.Getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.MasterVolume = clamp01(float64(n) / 100.0)
		}
	}

	if v := os.Getenv(EnvSampleRate); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Audio.SampleRate = n
		}
	}

	if v := os.Getenv(EnvSoundDir); v != "" {
		c.Audio.SoundDir = v
	}

	if v := os.Getenv(EnvColors); v != "" {
		var colors []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				colors = append(colors, part)
			}
		}
		c.Boundary.Colors = colors
	}

	if v := os.Getenv(EnvColorMode); v != "" {
		c.Render.ColorMode = v
	}

	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate rejects configurations the boundary model or audio layer cannot use
func (c *Config) Validate() error {
	b := c.Boundary
	if b.InnerRadius <= 0 || b.OuterRadius <= b.InnerRadius {
		return fmt.Errorf("%w: radii must satisfy 0 < inner_radius < outer_radius (got %v, %v)",
			ErrInvalid, b.InnerRadius, b.OuterRadius)
	}
	if len(b.Colors) < 3 {
		return fmt.Errorf("%w: need 3 boundary colors, got %d", ErrInvalid, len(b.Colors))
	}

	if c.Input.MouseGain <= 0 || c.Input.KeyStep <= 0 || c.Input.KeyStepLarge <= 0 {
		return fmt.Errorf("%w: input gain and steps must be positive", ErrInvalid)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: master_volume %v outside [0, 1]", ErrInvalid, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalid)
	}

	switch c.Render.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: color mode %q (auto, truecolor, 256)", ErrInvalid, c.Render.ColorMode)
	}
	if c.Render.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame_interval must be positive", ErrInvalid)
	}

	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
