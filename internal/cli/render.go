package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/pipeline"
	"github.com/matzehuels/paddock/pkg/series"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file (single widget/format) or base path
	formats   string  // comma-separated output formats
	all       bool    // render every widget
	frames    int     // frames to advance before the snapshot
	spinAt    int     // spin the wheel before this frame
	width     float64 // surface width override
	height    float64 // surface height override
	dpr       float64 // device pixel ratio override
	timeframe string  // terrain timeframe
	hover     string  // "x,y" pointer position
	click     string  // "x,y" click position
	sel       string  // owner id or pedigree key to select
	heatmap   bool    // pedigree heatmap
	refresh   bool    // bypass cached snapshots
	noCache   bool    // disable the snapshot cache
	realtime  bool    // pace frames with the wall clock
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:       "render [widget...]",
		Short:     "Render widget snapshots to files",
		Long:      "Render builds each widget from the dashboard configuration, advances its frame clock and writes the last frame in the requested formats.",
		ValidArgs: pipeline.Widgets,
		Example: `  paddock render wheel --spin-at 1 -f svg,png
  paddock render pedigree --select 1-0 -f svg,dot
  paddock render --all -o out/
  paddock render wheel --spin-at 1 --realtime`,
		RunE: func(cmd *cobra.Command, args []string) error {
			widgets := args
			if opts.all {
				widgets = pipeline.Widgets
			}
			if len(widgets) == 0 {
				widgets = []string{pipeline.DefaultWidget}
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), widgets, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single widget/format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, msgpack, dot, graphviz")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every widget")
	cmd.Flags().IntVar(&opts.frames, "frames", 0, "frames to advance (default: 1, or until a spin lands)")
	cmd.Flags().IntVar(&opts.spinAt, "spin-at", 0, "spin the wheel before this frame")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width in CSS pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height in CSS pixels")
	cmd.Flags().Float64Var(&opts.dpr, "dpr", 0, "device pixel ratio")
	cmd.Flags().StringVar(&opts.timeframe, "timeframe", "", "terrain timeframe: 1w, 1m, 3m, 1y")
	cmd.Flags().StringVar(&opts.hover, "hover", "", "pointer position x,y")
	cmd.Flags().StringVar(&opts.click, "click", "", "click position x,y")
	cmd.Flags().StringVar(&opts.sel, "select", "", "owner id (fluid) or generation-position key (pedigree)")
	cmd.Flags().BoolVar(&opts.heatmap, "heatmap", false, "color the pedigree by line")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached snapshots")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the snapshot cache")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "advance frames in real time at 60 fps")

	return cmd
}

// toOptions converts the flags for one widget. Flags that only make sense for
// another widget are dropped when several widgets are rendered at once.
func (o *renderOpts) toOptions(widget string, multi bool) (pipeline.Options, error) {
	hover, err := parsePoint(o.hover)
	if err != nil {
		return pipeline.Options{}, err
	}
	click, err := parsePoint(o.click)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Widget:    widget,
		Formats:   parseFormats(o.formats),
		Frames:    o.frames,
		SpinAt:    o.spinAt,
		Timeframe: series.Timeframe(o.timeframe),
		Hover:     hover,
		Click:     click,
		Select:    o.sel,
		Heatmap:   o.heatmap,
		Refresh:   o.refresh,
		Realtime:  o.realtime,
	}
	if multi {
		if widget != pipeline.DefaultWidget {
			opts.SpinAt = 0
		}
		if widget != "fluid" && widget != "pedigree" {
			opts.Select = ""
		}
		if widget != "pedigree" {
			opts.Formats = slices.DeleteFunc(slices.Clone(opts.Formats), func(f string) bool {
				return f == pipeline.FormatDOT || f == pipeline.FormatGraphviz
			})
		}
	}
	return opts, nil
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, widgets []string, o *renderOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	multi := len(widgets) > 1
	for _, name := range widgets {
		opts, err := o.toOptions(name, multi)
		if err != nil {
			return err
		}
		if o.width > 0 || o.height > 0 || o.dpr > 0 {
			base := runner.Config.Surface
			opts.Surface = draw.NewSurface(orDefault(o.width, base.Width), orDefault(o.height, base.Height), orDefault(o.dpr, base.DPR))
		}
		if len(opts.Formats) == 0 {
			logger.Debug("nothing to render", "widget", name)
			continue
		}

		prog := newProgress(logger)
		sp := newSpinner(ctx, os.Stderr, "Rendering "+name)
		sp.Start()
		res, err := runner.Execute(ctx, opts)
		sp.Stop()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		prog.done("Rendered " + res.Widget)

		printSuccess(w, "%s", StyleTitle.Render(res.Widget))
		printStats(w, res.Stats.Frames, res.Stats.Commands, res.Cached)
		if res.Outcome != nil {
			printDetail(w, "landed on %s (%.0f%%)", res.Outcome.Entity.Label, res.Outcome.Probability*100)
		}
		for _, format := range opts.Formats {
			path := outputPath(o.output, res.Widget, format, multi || len(opts.Formats) > 1)
			if err := writeFile(path, res.Artifacts[format]); err != nil {
				return err
			}
			printFile(w, path)
		}
	}
	return nil
}

// orDefault returns v when set, otherwise fallback.
func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// outputPath names one artifact. A single artifact goes to output as given;
// otherwise output is a base path (or directory) and the widget and format
// are appended.
func outputPath(output, widget, format string, multiple bool) string {
	ext := formatExt(format)
	if output == "" {
		return widget + "." + ext
	}
	if strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, widget+"."+ext)
	}
	if !multiple {
		return output
	}
	base := output
	if pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(output), ".")] {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return fmt.Sprintf("%s_%s.%s", base, widget, ext)
}

func formatExt(format string) string {
	switch format {
	case pipeline.FormatGraphviz:
		return "graphviz.svg"
	case pipeline.FormatMsgpack:
		return "msgpack"
	default:
		return format
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
