package layout

import "math"

// Point is a position in logical surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Slot identifies a node of a binary pedigree: generation 0 is the subject,
// generation g holds 2^g ancestors ordered sire-first.
type Slot struct {
	Generation int   `json:"generation"`
	Position   int   `json:"position"`
	Center     Point `json:"center"`
}

// Offspring returns the slot this ancestor descends into, one generation
// closer to the subject. Generation 0 has none.
func (s Slot) Offspring() (generation, position int, ok bool) {
	if s.Generation == 0 {
		return 0, 0, false
	}
	return s.Generation - 1, s.Position / 2, true
}

// IsSire reports whether the slot is on a sire position (even index).
func (s Slot) IsSire() bool { return s.Position%2 == 0 }

// Tree lays out depth generations of a binary pedigree. Each generation is a
// row; the row's width is split into 2^g equal cells and each node is centred
// in its cell. Row g sits at top + g*rowGap.
func Tree(depth int, width, top, rowGap float64) [][]Slot {
	if depth <= 0 || width <= 0 {
		return nil
	}
	rows := make([][]Slot, depth)
	for g := 0; g < depth; g++ {
		n := 1 << g
		cell := width / float64(n)
		row := make([]Slot, n)
		for k := 0; k < n; k++ {
			row[k] = Slot{
				Generation: g,
				Position:   k,
				Center:     Point{X: cell*float64(k) + cell/2, Y: top + float64(g)*rowGap},
			}
		}
		rows[g] = row
	}
	return rows
}
