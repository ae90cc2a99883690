package widget

import (
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
)

// CategoryColor returns the base color of an entity. An explicit color token
// wins; otherwise the color follows the entity's category.
func CategoryColor(p draw.Palette, e entity.Entity) draw.Color {
	if e.ColorToken != "" {
		if c, err := p.Resolve(e.ColorToken); err == nil {
			return c
		}
	}
	switch e.Category {
	case entity.Self:
		return p.MustResolve(draw.TokenPrimary)
	case entity.Sire:
		return p.MustResolve(draw.TokenSire)
	case entity.Dam:
		return p.MustResolve(draw.TokenDam)
	case entity.Owner, entity.Trait:
		return p.MustResolve(draw.TokenPrimary)
	case entity.Marker:
		return p.MustResolve(draw.TokenSecondary)
	default:
		return p.MustResolve(draw.TokenForeground)
	}
}

// ValidateColors checks that every explicit color token in set resolves.
func ValidateColors(p draw.Palette, set entity.Set) error {
	for _, e := range set {
		if e.ColorToken == "" {
			continue
		}
		if _, err := p.Resolve(e.ColorToken); err != nil {
			return err
		}
	}
	return nil
}
