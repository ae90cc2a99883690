package sink

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/errors"
)

// RasterOption configures PNG and PDF rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	svgOpts []SVGOption
	zoom    float64
}

// WithSVGOptions passes options through to the underlying SVG renderer.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *rasterRenderer) { r.svgOpts = opts }
}

// WithZoom scales the raster beyond the surface's device pixel ratio.
func WithZoom(z float64) RasterOption {
	return func(r *rasterRenderer) { r.zoom = z }
}

func newRasterRenderer(opts []RasterOption) rasterRenderer {
	r := rasterRenderer{zoom: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderPNG renders the frame as PNG via SVG conversion. The image is the
// backing size of the surface times the zoom.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(s draw.Surface, cmds draw.List, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	svg := RenderSVG(s, cmds, r.svgOpts...)
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", r.zoom))
}

// RenderPDF renders the frame as PDF via SVG conversion.
func RenderPDF(s draw.Surface, cmds draw.List, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	return rsvgConvert(RenderSVG(s, cmds, r.svgOpts...), "pdf")
}

// Available reports whether raster conversion is installed.
func Available() bool {
	_, err := exec.LookPath("rsvg-convert")
	return err == nil
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
