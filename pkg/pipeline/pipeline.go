// Package pipeline renders headless snapshots of dashboard widgets.
//
// A snapshot builds one widget from the dashboard configuration, mounts it
// on a simulated frame clock, advances a number of frames (optionally
// spinning the wheel or moving the pointer on the way) and renders the last
// frame's draw commands in the requested formats. The CLI, tests and any
// batch job share this code path.
//
// # Usage
//
//	runner := pipeline.NewRunner(cfg, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Widget:  "wheel",
//	    Formats: []string{"svg", "json"},
//	    SpinAt:  1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget/constellation"
	"github.com/matzehuels/paddock/pkg/widget/fluid"
	"github.com/matzehuels/paddock/pkg/widget/helix"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
	"github.com/matzehuels/paddock/pkg/widget/terrain"
	"github.com/matzehuels/paddock/pkg/widget/wheel"
)

// DefaultWidget is rendered when Options.Widget is empty.
const DefaultWidget = wheel.Name

// Format constants for output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
	// FormatDOT and FormatGraphviz export the pedigree tree through Graphviz
	// instead of the canvas draw pass.
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatMsgpack:  true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// Widgets lists the widget names in dashboard order.
var Widgets = []string{
	wheel.Name,
	terrain.Name,
	fluid.Name,
	constellation.Name,
	helix.Name,
	pedigree.Name,
}

// Options selects what a snapshot draws.
type Options struct {
	Widget  string   `json:"widget"`
	Formats []string `json:"formats,omitempty"`
	// Frames is the number of frames advanced before the last one is
	// rendered. Zero picks one frame, or enough to finish a spin.
	Frames int `json:"frames,omitempty"`
	// SpinAt requests a wheel spin just before the given frame (1-based).
	// Zero means no spin.
	SpinAt int `json:"spin_at,omitempty"`
	// Seed overrides the configured seed when non-zero.
	Seed uint64 `json:"seed,omitempty"`
	// Surface overrides the configured surface when non-zero.
	Surface   draw.Surface     `json:"surface,omitzero"`
	Timeframe series.Timeframe `json:"timeframe,omitempty"`
	// Hover moves the pointer to this point before the first frame.
	Hover *layout.Point `json:"hover,omitempty"`
	// Click clicks this point before the first frame.
	Click *layout.Point `json:"click,omitempty"`
	// Select picks an owner id (fluid) or a "generation-position" key
	// (pedigree) before the first frame.
	Select  string `json:"select,omitempty"`
	Heatmap bool   `json:"heatmap,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
	// Realtime paces frames with the wall clock instead of a simulated one.
	// Realtime snapshots are never cached.
	Realtime bool `json:"realtime,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a snapshot run.
type Result struct {
	Widget string `json:"widget"`
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`
	Stats     Stats             `json:"stats"`
	// Outcome is the landed wheel spin, if any.
	Outcome *outcome.Outcome `json:"outcome,omitempty"`
	// Cached reports that the artifacts came from the cache.
	Cached bool `json:"cached"`
}

// Stats contains snapshot statistics.
type Stats struct {
	Frames   int           `json:"frames"`
	Commands int           `json:"commands"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWidget checks that a widget name is known.
func ValidateWidget(name string) error {
	if !slices.Contains(Widgets, name) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown widget %q (must be one of: %s)", name, strings.Join(Widgets, ", "))
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// SetDefaults fills in the widget, the formats and the logger.
func (o *Options) SetDefaults() {
	if o.Widget == "" {
		o.Widget = DefaultWidget
	}
	o.Widget = strings.ToLower(o.Widget)
	o.Timeframe = series.Timeframe(strings.ToLower(strings.TrimSpace(string(o.Timeframe))))
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Validate checks the options after SetDefaults.
func (o *Options) Validate() error {
	if err := ValidateWidget(o.Widget); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if (f == FormatDOT || f == FormatGraphviz) && o.Widget != pedigree.Name {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q is only available for the pedigree", f)
		}
	}
	if o.Frames < 0 || o.SpinAt < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frames and spin frame must not be negative")
	}
	if o.SpinAt > 0 && o.Widget != wheel.Name {
		return errors.New(errors.ErrCodeInvalidInput, "only the wheel spins")
	}
	if o.Frames > 0 && o.SpinAt > o.Frames {
		return errors.New(errors.ErrCodeInvalidInput, "spin frame %d is past the last frame %d", o.SpinAt, o.Frames)
	}
	if o.Surface != (draw.Surface{}) {
		if err := o.Surface.Validate(); err != nil {
			return err
		}
	}
	if o.Timeframe != "" {
		tf, err := series.ParseTimeframe(string(o.Timeframe))
		if err != nil {
			return err
		}
		o.Timeframe = tf
	}
	return nil
}
