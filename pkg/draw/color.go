package draw

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Color is an HSLA color. H is in degrees, S and L in percent, A in [0,1].
type Color struct {
	H float64 `json:"h" msgpack:"h"`
	S float64 `json:"s" msgpack:"s"`
	L float64 `json:"l" msgpack:"l"`
	A float64 `json:"a" msgpack:"a"`
}

// HSLA builds a color.
func HSLA(h, s, l, a float64) Color { return Color{H: h, S: s, L: l, A: a} }

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// WithHue returns c rotated to hue h.
func (c Color) WithHue(h float64) Color {
	c.H = h
	return c
}

// Opaque returns c without transparency, for attributes that carry alpha
// separately.
func (c Color) Opaque() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", num(c.H), num(c.S), num(c.L))
}

// String formats c as a CSS hsla() value.
func (c Color) String() string {
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", num(c.H), num(c.S), num(c.L), num(c.A))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var colorPattern = regexp.MustCompile(`^hsla?\(\s*([-\d.]+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*([\d.]+)\s*)?\)$`)

// ParseColor parses "hsl(h, s%, l%)" or "hsla(h, s%, l%, a)".
func ParseColor(s string) (Color, error) {
	m := colorPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Color{}, errors.New(errors.ErrCodeInvalidConfig, "invalid color %q", s)
	}
	vals := [4]float64{0, 0, 0, 1}
	for i := 1; i <= 4; i++ {
		if m[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i], 64)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
		}
		vals[i-1] = v
	}
	if vals[3] > 1 {
		return Color{}, errors.New(errors.ErrCodeInvalidConfig, "color alpha out of range in %q", s)
	}
	return HSLA(vals[0], vals[1], vals[2], vals[3]), nil
}

// Palette maps color tokens to colors.
type Palette map[string]Color

// Theme tokens shared by every widget.
const (
	TokenPrimary    = "primary"
	TokenSecondary  = "secondary"
	TokenBackground = "background"
	TokenForeground = "foreground"
	TokenSire       = "sire"
	TokenDam        = "dam"
	TokenMuted      = "muted"
)

// DefaultPalette returns the dark dashboard theme.
func DefaultPalette() Palette {
	return Palette{
		TokenPrimary:    HSLA(160, 94, 43, 1),
		TokenSecondary:  HSLA(46, 94, 43, 1),
		TokenBackground: HSLA(160, 8, 10, 1),
		TokenForeground: HSLA(60, 30, 96, 1),
		TokenSire:       HSLA(210, 80, 60, 1),
		TokenDam:        HSLA(340, 80, 60, 1),
		TokenMuted:      HSLA(160, 8, 40, 1),
	}
}

// Resolve returns the color for token, which is either a palette name or a
// literal hsl()/hsla() value. Unknown names are configuration errors.
func (p Palette) Resolve(token string) (Color, error) {
	if c, ok := p[strings.ToLower(strings.TrimSpace(token))]; ok {
		return c, nil
	}
	if strings.HasPrefix(strings.TrimSpace(token), "hsl") {
		return ParseColor(token)
	}
	return Color{}, errors.New(errors.ErrCodeInvalidConfig, "unknown color token %q", token)
}

// MustResolve is Resolve for tokens validated at configuration time. It
// falls back to the primary color.
func (p Palette) MustResolve(token string) Color {
	c, err := p.Resolve(token)
	if err != nil {
		return p[TokenPrimary]
	}
	return c
}
