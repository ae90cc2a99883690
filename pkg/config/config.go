// Package config loads the dashboard configuration.
//
// A dashboard file is TOML with one table per widget. Values missing from
// the file keep their defaults, which reproduce the demo dashboard. After the
// file is read, a .env file in the working directory (if any) is loaded and
// PADDOCK_* environment variables override the seed and the surface.
//
//	seed = 42
//
//	[surface]
//	width = 600
//	height = 300
//	dpr = 2
//
//	[[wheel.outcomes]]
//	label = "Speed"
//	weight = 0.25
//	category = "trait"
//	color = "hsl(160, 94%, 43%)"
package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/live"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget/constellation"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
)

// Environment variables read by Load.
const (
	EnvSeed   = "PADDOCK_SEED"
	EnvDPR    = "PADDOCK_DPR"
	EnvWidth  = "PADDOCK_WIDTH"
	EnvHeight = "PADDOCK_HEIGHT"
)

// Config is the whole dashboard.
type Config struct {
	// Seed drives every random source. Zero means "pick one at start".
	Seed    uint64            `toml:"seed"`
	Horse   string            `toml:"horse"`
	Surface draw.Surface      `toml:"surface"`
	Palette map[string]string `toml:"palette,omitempty"`

	Wheel         Wheel         `toml:"wheel"`
	Ownership     Ownership     `toml:"ownership"`
	Constellation Constellation `toml:"constellation"`
	Pedigree      Pedigree      `toml:"pedigree"`
	Helix         Helix         `toml:"helix"`
	Terrain       Terrain       `toml:"terrain"`
	Live          Live          `toml:"live"`
}

// Wheel configures the breeding outcome wheel.
type Wheel struct {
	Outcomes entity.Set `toml:"outcomes"`
	// MinTurns and MaxTurns bound the whole revolutions before landing.
	MinTurns int `toml:"min_turns"`
	MaxTurns int `toml:"max_turns"`
	// DurationMS is the spin length.
	DurationMS int `toml:"duration_ms"`
}

// Ownership configures the tokenized ownership fluid.
type Ownership struct {
	Owners entity.Set `toml:"owners"`
}

// Constellation configures the bloodline constellation.
type Constellation struct {
	Stars []constellation.Star `toml:"stars"`
}

// Pedigree configures the pedigree chart.
type Pedigree struct {
	Root    pedigree.Horse `toml:"root"`
	Depth   int            `toml:"depth"`
	Heatmap bool           `toml:"heatmap"`
}

// Helix configures the genetic value helix.
type Helix struct {
	Markers entity.Set `toml:"markers"`
	Nodes   int        `toml:"nodes"`
	Score   float64    `toml:"score"`
}

// Terrain configures the market momentum terrain.
type Terrain struct {
	TokenValue    float64          `toml:"token_value"`
	Timeframe     series.Timeframe `toml:"timeframe"`
	MovingAverage int              `toml:"moving_average"`
}

// Live configures the simulated live updates.
type Live struct {
	Countdown     live.Countdown `toml:"countdown"`
	PulseSeconds  int            `toml:"pulse_seconds"`
	CountdownTick int            `toml:"countdown_seconds"`
}

// Load returns Default overlaid with the TOML file at path (if path is not
// empty), then with .env and PADDOCK_* overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		if err := decode(cfg, string(data)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML from r on top of Default and validates the result.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	cfg := Default()
	if err := decode(cfg, string(data)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays data on cfg. Lists and the pedigree tree named in data
// replace the defaults instead of merging into them element by element.
func decode(cfg *Config, data string) error {
	var raw map[string]any
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return err
	}
	if md.IsDefined("wheel", "outcomes") {
		cfg.Wheel.Outcomes = nil
	}
	if md.IsDefined("ownership", "owners") {
		cfg.Ownership.Owners = nil
	}
	if md.IsDefined("constellation", "stars") {
		cfg.Constellation.Stars = nil
	}
	if md.IsDefined("helix", "markers") {
		cfg.Helix.Markers = nil
	}
	if md.IsDefined("pedigree", "root") {
		cfg.Pedigree.Root = pedigree.Horse{}
	}
	_, err = toml.Decode(data, cfg)
	return err
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// ApplyEnv overrides the seed and the surface from the environment lookup.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvSeed)
		}
		c.Seed = seed
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvDPR, &c.Surface.DPR},
		{EnvWidth, &c.Surface.Width},
		{EnvHeight, &c.Surface.Height},
	}
	for _, f := range floats {
		v := strings.TrimSpace(getenv(f.key))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", f.key)
		}
		*f.dst = n
	}
	return nil
}

// Validate checks every widget section and normalizes the terrain timeframe.
func (c *Config) Validate() error {
	if err := c.Surface.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "surface")
	}
	if _, err := c.ResolvePalette(); err != nil {
		return err
	}
	if err := c.Wheel.Outcomes.Validate(true); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "wheel outcomes")
	}
	if c.Wheel.MinTurns < 1 || c.Wheel.MaxTurns < c.Wheel.MinTurns {
		return errors.New(errors.ErrCodeInvalidConfig, "wheel turns must satisfy 1 <= min <= max, got [%d, %d]", c.Wheel.MinTurns, c.Wheel.MaxTurns)
	}
	if c.Wheel.DurationMS <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "wheel spin duration must be positive")
	}
	if err := c.Ownership.Owners.Validate(true); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "ownership")
	}
	if len(c.Constellation.Stars) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "constellation needs at least one star")
	}
	if c.Pedigree.Root.Name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "pedigree root needs a name")
	}
	if c.Pedigree.Depth < 0 || c.Pedigree.Depth > pedigree.MaxDepth {
		return errors.New(errors.ErrCodeInvalidConfig, "pedigree depth must be in [0, %d]", pedigree.MaxDepth)
	}
	if err := c.Helix.Markers.Validate(false); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "helix markers")
	}
	if c.Helix.Score < 0 || c.Helix.Score > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "helix score must be in [0, 100], got %g", c.Helix.Score)
	}
	if c.Terrain.TokenValue <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "terrain token value must be positive")
	}
	tf, err := series.ParseTimeframe(string(c.Terrain.Timeframe))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "terrain")
	}
	c.Terrain.Timeframe = tf
	if c.Terrain.MovingAverage < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "terrain moving average must not be negative")
	}
	if c.Live.PulseSeconds < 1 || c.Live.CountdownTick < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "live intervals must be at least one second")
	}
	return nil
}

// ResolvePalette returns the default palette with the configured colors
// applied on top.
func (c *Config) ResolvePalette() (draw.Palette, error) {
	p := draw.DefaultPalette()
	for name, v := range c.Palette {
		col, err := draw.ParseColor(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette %s", name)
		}
		p[strings.ToLower(name)] = col
	}
	return p, nil
}
