package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"gedmath/internal/state"
	"gedmath/internal/telemetry"
)

// Config controls runtime behavior for the TUI app.
type Config struct {
	LogPath     string `env:"LOG"`
	LogLevel    string `env:"LOG_LEVEL"`
	Debug       bool   `env:"DEBUG"`
	ASCIIOnly   bool   `env:"ASCII"`
	CatalogPath string `env:"CATALOG"`
	ActivityDSN string `env:"ACTIVITY_DSN"`
	UI          UIConfig
	Animation   AnimationConfig
}

type UIConfig struct {
	StyleVariant string `env:"STYLE"`
	MotionLevel  string `env:"MOTION"`
}

type AnimationConfig struct {
	DurationMS int `env:"ANIMATION_MS"`
	FPS        int `env:"ANIMATION_FPS"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		ActivityDSN: state.MemoryDSN,
		UI: UIConfig{
			StyleVariant: "chalkboard",
			MotionLevel:  "full",
		},
		Animation: AnimationConfig{
			DurationMS: 1000,
			FPS:        60,
		},
	}
}

// LoadEnv overlays GEDMATH_* environment variables on c. Unset variables
// leave the current values alone.
func (c *Config) LoadEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: "GEDMATH_"}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := telemetry.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ActivityDSN == "" {
		c.ActivityDSN = state.MemoryDSN
	}
	switch c.UI.StyleVariant {
	case "", "chalkboard", "paper", "phosphor":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "chalkboard"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	if c.Animation.DurationMS < 0 {
		return fmt.Errorf("invalid animation duration %dms", c.Animation.DurationMS)
	}
	if c.Animation.DurationMS == 0 {
		c.Animation.DurationMS = 1000
	}
	if c.Animation.FPS < 0 || c.Animation.FPS > 240 {
		return fmt.Errorf("invalid animation fps %d", c.Animation.FPS)
	}
	if c.Animation.FPS == 0 {
		c.Animation.FPS = 60
	}
	return nil
}
