package pedigree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
)

// DOT returns the tree as Graphviz DOT. Ancestors rank above their
// offspring; with the heatmap on, boxes are filled by line.
func (pd *Pedigree) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Pedigree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=gray50];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, a := range pd.ancestors {
		if a == nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(a.Index), strings.Join(pd.dotAttrs(a), ", "))
	}

	buf.WriteString("\n")
	for _, a := range pd.ancestors {
		if a == nil || a.Index == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(a.Index), nodeID((a.Index-1)/2))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "a" + strconv.Itoa(i) }

func (pd *Pedigree) dotAttrs(a *Ancestor) []string {
	label := a.Name
	if role := a.Role(); role != "" && a.Generation < 2 {
		label += "\n" + role
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if pd.heatmap {
		switch a.Line {
		case entity.Sire:
			attrs = append(attrs, "fillcolor=lightblue")
		case entity.Dam:
			attrs = append(attrs, "fillcolor=pink")
		case entity.Self, entity.Owner, entity.Trait, entity.Marker:
			attrs = append(attrs, "fillcolor=palegreen")
		}
	}
	if a.Index == pd.sel.Selected {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders the DOT tree to SVG using Graphviz.
func (pd *Pedigree) RenderSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(pd.DOT()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pedigree")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
