package draw

import "slices"

// Layer orders the commands of one draw pass. Lower layers are painted first.
type Layer uint8

// Draw layers, in paint order.
const (
	LayerBackground Layer = iota
	LayerConnective
	LayerGlyphs
	LayerHighlight
	LayerLabels
	numLayers
)

var layerNames = [...]string{"background", "connective", "glyphs", "highlight", "labels"}

func (l Layer) String() string {
	if l < numLayers {
		return layerNames[l]
	}
	return "unknown"
}

// List is the ordered command list produced by one frame.
type List []Command

// Count returns how many commands of kind k are in the list.
func (l List) Count(k Kind) int {
	n := 0
	for _, c := range l {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the text of every label in paint order.
func (l List) Texts() []string {
	var out []string
	for _, c := range l {
		if c.Kind == KindText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Pass collects commands per layer for a single frame. A frame always starts
// with a Clear, so nothing from the previous frame survives.
//
// Commands added to the same layer keep their insertion order; layers are
// flattened background first, labels last.
type Pass struct {
	layers [numLayers][]Command
}

// NewPass starts a frame.
func NewPass() *Pass {
	return &Pass{}
}

// Add appends commands to layer.
func (p *Pass) Add(layer Layer, cmds ...Command) *Pass {
	if layer >= numLayers {
		layer = LayerLabels
	}
	p.layers[layer] = append(p.layers[layer], cmds...)
	return p
}

// Len returns the number of commands added so far, excluding the Clear.
func (p *Pass) Len() int {
	n := 0
	for _, l := range p.layers {
		n += len(l)
	}
	return n
}

// Commands flattens the pass into a list starting with Clear.
func (p *Pass) Commands() List {
	out := make(List, 0, p.Len()+1)
	out = append(out, Clear())
	for _, l := range p.layers {
		out = append(out, l...)
	}
	return slices.Clip(out)
}
