package pipeline

import (
	"context"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/draw/sink"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/widget"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
)

// Render converts a drawn frame into the requested formats. w is the widget
// that drew the frame; Graphviz formats ask it for its DOT export.
func Render(ctx context.Context, w widget.Widget, f widget.Frame, palette draw.Palette, formats []string) (map[string][]byte, error) {
	svgOpts := []sink.SVGOption{
		sink.WithBackground(palette.MustResolve(draw.TokenBackground)),
		sink.WithTitle(f.Widget),
	}
	snapOpts := []sink.SnapshotOption{
		sink.WithWidget(f.Widget),
		sink.WithFrame(f.Number),
		sink.WithTimestamp(f.TS),
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(f.Surface, f.Commands, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(f.Surface, f.Commands, sink.WithSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(f.Surface, f.Commands, sink.WithSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(f.Surface, f.Commands, snapOpts...)
		case FormatMsgpack:
			data, err = sink.RenderMsgpack(f.Surface, f.Commands, snapOpts...)
		case FormatDOT, FormatGraphviz:
			pd, ok := w.(*pedigree.Pedigree)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "format %q needs the pedigree widget", format)
			}
			if format == FormatDOT {
				data = []byte(pd.DOT())
			} else {
				data, err = pd.RenderSVG(ctx)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
