package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gedmath/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gedmath:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gedmath",
		Short:         "GED Math Visualized: interactive math lessons in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	def := app.DefaultConfig()
	f := cmd.Flags()
	f.String("style", def.UI.StyleVariant, "style variant: chalkboard, paper or phosphor")
	f.String("motion", def.UI.MotionLevel, "motion level: full, reduced or off")
	f.Bool("ascii", false, "draw with ASCII glyphs only")
	f.String("log", "", "write JSON event log to this file")
	f.String("log-level", def.LogLevel, "event log level: debug, info or error")
	f.String("catalog", "", "load lessons from this catalog YAML instead of the built-in one")
	f.Bool("debug", false, "show debug info in the header and verbose UI diagnostics")
	f.String("activity-dsn", def.ActivityDSN, "sqlite DSN for the session activity log")
	return cmd
}

// loadConfig layers defaults, GEDMATH_* environment and explicitly set flags.
func loadConfig(fs *pflag.FlagSet) (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := cfg.LoadEnv(); err != nil {
		return cfg, err
	}
	var err error
	fs.Visit(func(f *pflag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "style":
			cfg.UI.StyleVariant = v
		case "motion":
			cfg.UI.MotionLevel = v
		case "ascii":
			cfg.ASCIIOnly, err = fs.GetBool("ascii")
		case "log":
			cfg.LogPath = v
		case "log-level":
			cfg.LogLevel = v
		case "catalog":
			cfg.CatalogPath = v
		case "debug":
			cfg.Debug, err = fs.GetBool("debug")
		case "activity-dsn":
			cfg.ActivityDSN = v
		}
	})
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func run(parent context.Context, cfg app.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}
