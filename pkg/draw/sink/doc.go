// Package sink turns draw command lists into output formats.
//
// # Formats
//
//   - SVG: [RenderSVG] writes a vector image whose viewBox is the logical
//     surface and whose width and height are the device-pixel backing size
//   - PNG and PDF: [RenderPNG] and [RenderPDF] convert the SVG with
//     rsvg-convert (requires librsvg)
//   - JSON and MessagePack: [RenderJSON] and [RenderMsgpack] export a
//     [Snapshot] for external renderers and snapshot streams
//
// Basic usage:
//
//	svg := sink.RenderSVG(surface, cmds,
//	    sink.WithBackground(palette[draw.TokenBackground]),
//	    sink.WithTitle("Genetic Lottery"),
//	)
//
// Sinks never mutate the command list and produce identical bytes for
// identical input.
package sink
