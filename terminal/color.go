package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// truecolorEnv are set by terminals known to render 24-bit colour
var truecolorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// DetectColorMode guesses the capability from the environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, name := range truecolorEnv {
		if os.Getenv(name) != "" {
			return ColorModeTrueColor
		}
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") || strings.Contains(term, "24bit") || strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// ResolveColorMode maps a configured name (auto, truecolor, 256) to a mode
func ResolveColorMode(name string) (ColorMode, error) {
	switch name {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	}
	return ColorMode256, fmt.Errorf("terminal: unknown color mode %q", name)
}

// Apply configures tcell for the mode; tcell downgrades RGB to the palette when truecolor is disabled.
// Must run before the screen is created.
func (m ColorMode) Apply() error {
	if m == ColorMode256 {
		return os.Setenv("TCELL_TRUECOLOR", "disable")
	}
	return os.Unsetenv("TCELL_TRUECOLOR")
}
