// Package entity defines the weighted items placed inside a visualization.
//
// An [Entity] is a stallion ancestor, an owner stake, a trait category or a
// genetic marker: anything that occupies a share of a widget proportional to
// its weight. Entity order is significant. It determines stacking order in
// stacked layouts and angular order in radial layouts, and it never changes
// while a widget is mounted.
//
// Every entity carries a [Category] from a closed set. Draw passes switch over
// the category exhaustively to pick colors and glyphs, so a new category can
// only be introduced together with its rendering.
package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Category is the closed set of roles an entity can play in a widget.
type Category uint8

const (
	// Self is the horse the dashboard is about.
	Self Category = iota
	// Sire marks the paternal line.
	Sire
	// Dam marks the maternal line.
	Dam
	// Owner is a fractional ownership stake.
	Owner
	// Trait is a heritable trait on the outcome wheel.
	Trait
	// Marker is a genetic marker on the value helix.
	Marker

	numCategories
)

var categoryNames = [numCategories]string{
	Self:   "self",
	Sire:   "sire",
	Dam:    "dam",
	Owner:  "owner",
	Trait:  "trait",
	Marker: "marker",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c < numCategories
}

// ParseCategory converts a name such as "sire" into a Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler so categories read naturally
// in TOML and JSON.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Entity is a weighted item positioned within a visualization.
type Entity struct {
	ID         string   `json:"id" toml:"id"`
	Label      string   `json:"label" toml:"label"`
	Weight     float64  `json:"weight" toml:"weight"`
	ColorToken string   `json:"color,omitempty" toml:"color"`
	Category   Category `json:"category" toml:"category"`
}

// New returns an entity with a fresh random ID.
func New(label string, weight float64, cat Category, color string) Entity {
	return Entity{
		ID:         uuid.NewString(),
		Label:      label,
		Weight:     weight,
		ColorToken: color,
		Category:   cat,
	}
}

// Set is an ordered list of entities belonging to one widget.
type Set []Entity

// Weights returns the entity weights in order.
func (s Set) Weights() []float64 {
	w := make([]float64, len(s))
	for i, e := range s {
		w[i] = e.Weight
	}
	return w
}

// Index returns the position of the entity with the given id, or -1.
func (s Set) Index(id string) int {
	for i, e := range s {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// WithIDs returns a copy of s where every empty ID is replaced by a UUID.
func (s Set) WithIDs() Set {
	out := make(Set, len(s))
	copy(out, s)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

// Validate checks weights and categories. When closed is true the weights
// must form a probability distribution.
func (s Set) Validate(closed bool) error {
	if err := errors.ValidateWeights(s.Weights(), closed); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(s))
	for i, e := range s {
		if !e.Category.Valid() {
			return errors.New(errors.ErrCodeInvalidConfig, "entity %d (%s) has invalid category", i, e.Label)
		}
		if e.ID == "" {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate entity id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
