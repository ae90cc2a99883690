package draw

import (
	"slices"

	"github.com/matzehuels/paddock/pkg/layout"
)

// Kind identifies a draw command.
type Kind uint8

// Command kinds.
const (
	KindClear Kind = iota
	KindRect
	KindPath
	KindArc
	KindCircle
	KindLine
	KindText
)

var kindNames = [...]string{"clear", "rect", "path", "arc", "circle", "line", "text"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// PaintKind selects how a shape is filled.
type PaintKind uint8

// Paint kinds.
const (
	PaintSolid PaintKind = iota
	PaintLinear
	PaintRadial
)

// Stop is one color stop of a gradient.
type Stop struct {
	Offset float64 `json:"offset" msgpack:"offset"`
	Color  Color   `json:"color" msgpack:"color"`
}

// Paint is a solid color or a gradient in surface coordinates. Linear
// gradients run from (X0,Y0) to (X1,Y1); radial gradients run from the circle
// (X0,Y0,R0) to the circle (X1,Y1,R1).
type Paint struct {
	Kind  PaintKind `json:"kind" msgpack:"kind"`
	Color Color     `json:"color,omitzero" msgpack:"color,omitempty"`
	X0    float64   `json:"x0,omitempty" msgpack:"x0,omitempty"`
	Y0    float64   `json:"y0,omitempty" msgpack:"y0,omitempty"`
	R0    float64   `json:"r0,omitempty" msgpack:"r0,omitempty"`
	X1    float64   `json:"x1,omitempty" msgpack:"x1,omitempty"`
	Y1    float64   `json:"y1,omitempty" msgpack:"y1,omitempty"`
	R1    float64   `json:"r1,omitempty" msgpack:"r1,omitempty"`
	Stops []Stop    `json:"stops,omitempty" msgpack:"stops,omitempty"`
}

// Solid returns a single-color paint.
func Solid(c Color) Paint { return Paint{Kind: PaintSolid, Color: c} }

// Linear returns a linear gradient paint.
func Linear(x0, y0, x1, y1 float64, stops ...Stop) Paint {
	return Paint{Kind: PaintLinear, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: slices.Clone(stops)}
}

// Radial returns a radial gradient paint between two concentric circles.
func Radial(cx, cy, r0, r1 float64, stops ...Stop) Paint {
	return Paint{Kind: PaintRadial, X0: cx, Y0: cy, R0: r0, X1: cx, Y1: cy, R1: r1, Stops: slices.Clone(stops)}
}

// Stroke describes an outline.
type Stroke struct {
	Color      Color     `json:"color" msgpack:"color"`
	Width      float64   `json:"width" msgpack:"width"`
	Dash       []float64 `json:"dash,omitempty" msgpack:"dash,omitempty"`
	DashOffset float64   `json:"dash_offset,omitempty" msgpack:"dash_offset,omitempty"`
}

// Align is the horizontal anchor of text.
type Align uint8

// Text alignments.
const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

// Font describes text rendering.
type Font struct {
	Size   float64 `json:"size" msgpack:"size"`
	Bold   bool    `json:"bold,omitempty" msgpack:"bold,omitempty"`
	Family string  `json:"family,omitempty" msgpack:"family,omitempty"`
}

// Command is one immutable drawing instruction. Builders return modified
// copies; slices are cloned so a command never aliases caller memory.
type Command struct {
	Kind Kind `json:"kind" msgpack:"kind"`

	// Rect and text anchor.
	X float64 `json:"x,omitempty" msgpack:"x,omitempty"`
	Y float64 `json:"y,omitempty" msgpack:"y,omitempty"`
	W float64 `json:"w,omitempty" msgpack:"w,omitempty"`
	H float64 `json:"h,omitempty" msgpack:"h,omitempty"`

	// Circle and arc geometry. Arc angles are in radians, clockwise on screen.
	CX    float64 `json:"cx,omitempty" msgpack:"cx,omitempty"`
	CY    float64 `json:"cy,omitempty" msgpack:"cy,omitempty"`
	R     float64 `json:"r,omitempty" msgpack:"r,omitempty"`
	Start float64 `json:"start,omitempty" msgpack:"start,omitempty"`
	End   float64 `json:"end,omitempty" msgpack:"end,omitempty"`
	Wedge bool    `json:"wedge,omitempty" msgpack:"wedge,omitempty"`

	// Path and line vertices.
	Points []layout.Point `json:"points,omitempty" msgpack:"points,omitempty"`
	Closed bool           `json:"closed,omitempty" msgpack:"closed,omitempty"`

	Text   string  `json:"text,omitempty" msgpack:"text,omitempty"`
	Font   Font    `json:"font,omitzero" msgpack:"font,omitempty"`
	Align  Align   `json:"align,omitempty" msgpack:"align,omitempty"`
	Rotate float64 `json:"rotate,omitempty" msgpack:"rotate,omitempty"`

	Fill   *Paint  `json:"fill,omitempty" msgpack:"fill,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty" msgpack:"stroke,omitempty"`
}

// Clear erases the whole surface.
func Clear() Command { return Command{Kind: KindClear} }

// Rect is an axis-aligned rectangle.
func Rect(x, y, w, h float64) Command {
	return Command{Kind: KindRect, X: x, Y: y, W: w, H: h}
}

// Circle is a full circle.
func Circle(cx, cy, r float64) Command {
	return Command{Kind: KindCircle, CX: cx, CY: cy, R: r}
}

// Wedge is a pie slice from the center to the arc between start and end.
func Wedge(cx, cy, r, start, end float64) Command {
	return Command{Kind: KindArc, CX: cx, CY: cy, R: r, Start: start, End: end, Wedge: true}
}

// Arc is an open circular arc between start and end.
func Arc(cx, cy, r, start, end float64) Command {
	return Command{Kind: KindArc, CX: cx, CY: cy, R: r, Start: start, End: end}
}

// Line is a straight segment.
func Line(x0, y0, x1, y1 float64) Command {
	return Command{Kind: KindLine, Points: []layout.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}}
}

// Polyline is an open path through pts.
func Polyline(pts []layout.Point) Command {
	return Command{Kind: KindPath, Points: slices.Clone(pts)}
}

// Polygon is a closed path through pts.
func Polygon(pts []layout.Point) Command {
	return Command{Kind: KindPath, Points: slices.Clone(pts), Closed: true}
}

// Text is a label anchored at (x, y).
func Text(x, y float64, s string, f Font) Command {
	return Command{Kind: KindText, X: x, Y: y, Text: s, Font: f}
}

// Filled returns c filled with p.
func (c Command) Filled(p Paint) Command {
	p.Stops = slices.Clone(p.Stops)
	c.Fill = &p
	return c
}

// FilledWith returns c filled with a solid color.
func (c Command) FilledWith(col Color) Command {
	return c.Filled(Solid(col))
}

// Stroked returns c outlined with s.
func (c Command) Stroked(s Stroke) Command {
	s.Dash = slices.Clone(s.Dash)
	c.Stroke = &s
	return c
}

// Outlined returns c outlined with a solid line.
func (c Command) Outlined(col Color, width float64) Command {
	return c.Stroked(Stroke{Color: col, Width: width})
}

// Rotated returns c rotated by angle radians around its anchor point.
func (c Command) Rotated(angle float64) Command {
	c.Rotate = angle
	return c
}

// Aligned returns a text command with the given alignment.
func (c Command) Aligned(a Align) Command {
	c.Align = a
	return c
}
