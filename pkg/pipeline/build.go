package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/anim"
	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget"
	"github.com/matzehuels/paddock/pkg/widget/constellation"
	"github.com/matzehuels/paddock/pkg/widget/fluid"
	"github.com/matzehuels/paddock/pkg/widget/helix"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
	"github.com/matzehuels/paddock/pkg/widget/terrain"
	"github.com/matzehuels/paddock/pkg/widget/wheel"
)

// BuildOptions carries the runtime inputs of Build that do not live in the
// configuration file.
type BuildOptions struct {
	Seed      uint64
	Timeframe series.Timeframe
	Heatmap   bool
	Now       func() time.Time
	Logger    *log.Logger
	// OnSpin receives every landed wheel spin.
	OnSpin func(outcome.Outcome)
}

// Build constructs the named widget from cfg.
func Build(cfg *config.Config, name string, opts BuildOptions) (widget.Widget, error) {
	palette, err := cfg.ResolvePalette()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("widget", name)
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Seed
	}

	switch name {
	case wheel.Name:
		return wheel.New(cfg.Wheel.Outcomes,
			wheel.WithPalette(palette),
			wheel.WithLogger(logger),
			wheel.WithDriver(anim.Driver{
				Duration: time.Duration(cfg.Wheel.DurationMS) * time.Millisecond,
				Ease:     anim.EaseOutCubic,
			}),
			wheel.WithResolverOptions(
				outcome.WithSeed(seed),
				outcome.WithTurns(cfg.Wheel.MinTurns, cfg.Wheel.MaxTurns),
			),
			wheel.WithOnResult(opts.OnSpin),
		)

	case terrain.Name:
		tf := cfg.Terrain.Timeframe
		if opts.Timeframe != "" {
			tf = opts.Timeframe
		}
		genOpts := []series.Option{series.WithSeed(seed)}
		if opts.Now != nil {
			genOpts = append(genOpts, series.WithNow(opts.Now))
		}
		return terrain.New(cfg.Terrain.TokenValue,
			terrain.WithPalette(palette),
			terrain.WithLogger(logger),
			terrain.WithGenerator(series.NewGenerator(genOpts...)),
			terrain.WithTimeframe(tf),
			terrain.WithMovingAverage(cfg.Terrain.MovingAverage),
			terrain.WithPeakSeed(seed),
		)

	case fluid.Name:
		return fluid.New(cfg.Ownership.Owners,
			fluid.WithPalette(palette),
			fluid.WithLogger(logger),
		)

	case constellation.Name:
		return constellation.New(cfg.Constellation.Stars,
			constellation.WithPalette(palette),
			constellation.WithLogger(logger),
		)

	case helix.Name:
		hopts := []helix.Option{
			helix.WithPalette(palette),
			helix.WithLogger(logger),
			helix.WithNodes(cfg.Helix.Nodes),
		}
		if cfg.Helix.Score > 0 {
			hopts = append(hopts, helix.WithScore(cfg.Helix.Score))
		}
		return helix.New(cfg.Helix.Markers, hopts...)

	case pedigree.Name:
		popts := []pedigree.Option{
			pedigree.WithPalette(palette),
			pedigree.WithLogger(logger),
		}
		if cfg.Pedigree.Depth > 0 {
			popts = append(popts, pedigree.WithDepth(cfg.Pedigree.Depth))
		}
		if cfg.Pedigree.Heatmap || opts.Heatmap {
			popts = append(popts, pedigree.WithHeatmap())
		}
		return pedigree.New(cfg.Pedigree.Root, popts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown widget %q", name)
}
