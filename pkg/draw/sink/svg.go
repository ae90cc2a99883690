package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background *draw.Color
	title      string
	font       string
}

// WithBackground paints the surface with c whenever the list clears it.
// Without it a clear leaves the surface transparent.
func WithBackground(c draw.Color) SVGOption {
	return func(r *svgRenderer) { r.background = &c }
}

// WithTitle embeds a <title> element for accessibility.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithFontFamily sets the font family used by text commands that specify none.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.font = f } }

// RenderSVG renders one frame. The viewBox uses logical units while the
// width and height attributes carry the device-pixel backing size.
func RenderSVG(s draw.Surface, cmds draw.List, opts ...SVGOption) []byte {
	r := svgRenderer{font: "sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var defs, body bytes.Buffer
	gradients := 0
	for _, c := range cmds {
		r.renderCommand(&body, &defs, &gradients, s, c)
	}

	bw, bh := s.Backing()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%d" height="%d">`+"\n",
		f(s.Width), f(s.Height), bw, bh)
	if r.title != "" {
		buf.WriteString("  <title>")
		escapeXML(&buf, r.title)
		buf.WriteString("</title>\n")
	}
	if defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCommand(body, defs *bytes.Buffer, gradients *int, s draw.Surface, c draw.Command) {
	switch c.Kind {
	case draw.KindClear:
		if r.background != nil {
			fmt.Fprintf(body, `  <rect x="0" y="0" width="%s" height="%s"%s/>`+"\n",
				f(s.Width), f(s.Height), colorAttrs("fill", *r.background))
		}
		return
	case draw.KindRect:
		fmt.Fprintf(body, `  <rect x="%s" y="%s" width="%s" height="%s"`, f(c.X), f(c.Y), f(c.W), f(c.H))
	case draw.KindCircle:
		fmt.Fprintf(body, `  <circle cx="%s" cy="%s" r="%s"`, f(c.CX), f(c.CY), f(c.R))
	case draw.KindArc:
		fmt.Fprintf(body, `  <path d="%s"`, arcPath(c))
	case draw.KindPath:
		if len(c.Points) == 0 {
			return
		}
		fmt.Fprintf(body, `  <path d="%s"`, polyPath(c.Points, c.Closed))
	case draw.KindLine:
		if len(c.Points) < 2 {
			return
		}
		fmt.Fprintf(body, `  <line x1="%s" y1="%s" x2="%s" y2="%s"`,
			f(c.Points[0].X), f(c.Points[0].Y), f(c.Points[1].X), f(c.Points[1].Y))
	case draw.KindText:
		r.renderText(body, defs, gradients, c)
		return
	default:
		return
	}

	body.WriteString(paintAttrs(defs, gradients, c))
	body.WriteString(rotateAttr(c))
	body.WriteString("/>\n")
}

func (r *svgRenderer) renderText(body, defs *bytes.Buffer, gradients *int, c draw.Command) {
	family := c.Font.Family
	if family == "" {
		family = r.font
	}
	fmt.Fprintf(body, `  <text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-family="%s" font-size="%s"`,
		f(c.X), f(c.Y), anchor(c.Align), family, f(c.Font.Size))
	if c.Font.Bold {
		body.WriteString(` font-weight="bold"`)
	}
	body.WriteString(paintAttrs(defs, gradients, c))
	body.WriteString(rotateAttr(c))
	body.WriteString(">")
	escapeXML(body, c.Text)
	body.WriteString("</text>\n")
}

func paintAttrs(defs *bytes.Buffer, gradients *int, c draw.Command) string {
	var sb strings.Builder
	switch {
	case c.Fill == nil:
		sb.WriteString(` fill="none"`)
	case c.Fill.Kind == draw.PaintSolid:
		sb.WriteString(colorAttrs("fill", c.Fill.Color))
	default:
		id := fmt.Sprintf("grad%d", *gradients)
		*gradients++
		writeGradient(defs, id, *c.Fill)
		fmt.Fprintf(&sb, ` fill="url(#%s)"`, id)
	}
	if st := c.Stroke; st != nil {
		sb.WriteString(colorAttrs("stroke", st.Color))
		fmt.Fprintf(&sb, ` stroke-width="%s"`, f(st.Width))
		if len(st.Dash) > 0 {
			parts := make([]string, len(st.Dash))
			for i, d := range st.Dash {
				parts[i] = f(d)
			}
			fmt.Fprintf(&sb, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
		}
		if st.DashOffset != 0 {
			fmt.Fprintf(&sb, ` stroke-dashoffset="%s"`, f(st.DashOffset))
		}
	}
	return sb.String()
}

// writeGradient emits a gradient in user space. Radial gradients with an
// inner radius are expressed by remapping stop offsets onto the outer circle.
func writeGradient(defs *bytes.Buffer, id string, p draw.Paint) {
	inner := 0.0
	switch p.Kind {
	case draw.PaintLinear:
		fmt.Fprintf(defs, `    <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			id, f(p.X0), f(p.Y0), f(p.X1), f(p.Y1))
	case draw.PaintRadial:
		if p.R1 > 0 {
			inner = p.R0 / p.R1
		}
		fmt.Fprintf(defs, `    <radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`+"\n",
			id, f(p.X1), f(p.Y1), f(p.R1))
	}
	for _, st := range p.Stops {
		off := inner + st.Offset*(1-inner)
		fmt.Fprintf(defs, `      <stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
			f(off), st.Color.Opaque(), f(st.Color.A))
	}
	if p.Kind == draw.PaintLinear {
		defs.WriteString("    </linearGradient>\n")
	} else {
		defs.WriteString("    </radialGradient>\n")
	}
}

func colorAttrs(attr string, c draw.Color) string {
	s := fmt.Sprintf(` %s="%s"`, attr, c.Opaque())
	if c.A < 1 {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, f(c.A))
	}
	return s
}

func rotateAttr(c draw.Command) string {
	if c.Rotate == 0 {
		return ""
	}
	x, y := c.X, c.Y
	switch c.Kind {
	case draw.KindCircle, draw.KindArc:
		x, y = c.CX, c.CY
	case draw.KindPath, draw.KindLine:
		if len(c.Points) > 0 {
			x, y = c.Points[0].X, c.Points[0].Y
		}
	}
	return fmt.Sprintf(` transform="rotate(%s %s %s)"`, f(c.Rotate*180/math.Pi), f(x), f(y))
}

func arcPath(c draw.Command) string {
	sweep := c.End - c.Start
	if sweep >= 2*math.Pi-1e-9 {
		// A single SVG arc cannot describe a full turn; split it in halves.
		mid := c.Start + math.Pi
		p0, p1 := polar(c, c.Start), polar(c, mid)
		return fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
			f(p0.X), f(p0.Y), f(c.R), f(c.R), f(p1.X), f(p1.Y), f(c.R), f(c.R), f(p0.X), f(p0.Y))
	}
	p0, p1 := polar(c, c.Start), polar(c, c.End)
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	arc := fmt.Sprintf("A %s %s 0 %d 1 %s %s", f(c.R), f(c.R), large, f(p1.X), f(p1.Y))
	if c.Wedge {
		return fmt.Sprintf("M %s %s L %s %s %s Z", f(c.CX), f(c.CY), f(p0.X), f(p0.Y), arc)
	}
	return fmt.Sprintf("M %s %s %s", f(p0.X), f(p0.Y), arc)
}

func polar(c draw.Command, a float64) layout.Point {
	return layout.Point{X: c.CX + c.R*math.Cos(a), Y: c.CY + c.R*math.Sin(a)}
}

func polyPath(pts []layout.Point, closed bool) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(f(p.X))
		sb.WriteByte(' ')
		sb.WriteString(f(p.Y))
	}
	if closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}

func anchor(a draw.Align) string {
	switch a {
	case draw.AlignStart:
		return "start"
	case draw.AlignEnd:
		return "end"
	default:
		return "middle"
	}
}

func escapeXML(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

// f formats a coordinate with at most two decimals.
func f(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
