// Package cli implements the paddock command-line interface.
//
// The commands render headless snapshots of the dashboard widgets, inspect
// the data behind them (wheel odds, synthetic series, the pedigree) and run
// a live terminal view driven by the same frame clock the widgets use in a
// browser. Every command reads the dashboard configuration from --config
// (or the defaults) and logs through charmbracelet/log; -v enables debug
// output.
//
// # Commands
//
//   - render: write widget snapshots as SVG, PNG, PDF, JSON, msgpack or DOT
//   - spin: spin the outcome wheel, or simulate many spins and test the odds
//   - series: print the synthetic market series with its overlays
//   - pedigree: list the ancestors and their genetic influence
//   - watch: live terminal dashboard with the auction countdown and market pulse
//   - config: print or check the dashboard configuration
//   - cache: manage the snapshot cache
package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/buildinfo"
	"github.com/matzehuels/paddock/pkg/cache"
	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "paddock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	seed       uint64
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Paddock draws the bloodstock dashboard widgets",
		Long:         `Paddock renders the procedural visualizations of a bloodstock dashboard (outcome wheel, market terrain, ownership fluid, bloodline constellation, genetic helix and pedigree chart) as files or as a live terminal view.`,
		Version:      buildinfo.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "dashboard configuration file (TOML)")
	root.PersistentFlags().Uint64Var(&c.seed, "seed", 0, "random seed (0 keeps the configured seed)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.spinCommand())
	root.AddCommand(c.seriesCommand())
	root.AddCommand(c.pedigreeCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config on top of the defaults and applies --seed.
func (c *CLI) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.seed != 0 {
		cfg.Seed = c.seed
	}
	if c.configPath != "" {
		loggerFromContext(ctx).Debug("loaded config", "path", c.configPath, "horse", cfg.Horse)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cfg, newCache(ctx, noCache), loggerFromContext(ctx)), nil
}

// newCache opens the snapshot cache. An unusable cache directory falls back
// to no caching.
func newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Warn("snapshot cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the snapshot cache directory (~/.cache/paddock on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parsePoint parses "x,y" in CSS pixels. An empty string is no point.
func parsePoint(s string) (*layout.Point, error) {
	if s == "" {
		return nil, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "point %q must be x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "point x")
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "point y")
	}
	return &layout.Point{X: x, Y: y}, nil
}
