package gbufview

import (
	"os"
	"path/filepath"

	"github.com/gogpu/gbufview/render"
)

// CustomShaderEnv names the environment variable that overrides the
// default custom shader path.
const CustomShaderEnv = "GBUFVIEW_CUSTOM_SHADER"

// Config is the operator-facing configuration of a Compositor.
type Config struct {
	// Mode is the raw mode value as set by the UI. See EffectiveMode.
	Mode int

	// Viewport is where the debug quad is drawn, in normalized device
	// coordinates.
	Viewport render.Rect
}

// DefaultConfig returns a disabled configuration covering the right half
// of the screen.
func DefaultConfig() Config {
	return Config{
		Mode:     int(ModeOff),
		Viewport: render.NewRect(0, -1, 1, 1),
	}
}

// EffectiveMode returns the mode the compositor runs. Values in
// [ModeAlbedo, ModeCustom] and ModeOff are used as is; anything else
// becomes ModeAlbedo.
func (c Config) EffectiveMode() Mode {
	m := Mode(c.Mode)
	if m == ModeOff || (m >= ModeAlbedo && m <= ModeCustom) {
		return m
	}
	return ModeAlbedo
}

// Sanitize returns c with Mode replaced by EffectiveMode.
func (c Config) Sanitize() Config {
	c.Mode = int(c.EffectiveMode())
	return c
}

// DefaultCustomShaderPath returns $GBUFVIEW_CUSTOM_SHADER, or custom.wgsl
// on the user's desktop when the variable is unset.
func DefaultCustomShaderPath() string {
	if p := os.Getenv(CustomShaderEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "custom.wgsl"
	}
	return filepath.Join(home, "Desktop", "custom.wgsl")
}
