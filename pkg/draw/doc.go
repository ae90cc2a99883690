// Package draw defines the renderer-agnostic command model every widget emits.
//
// A frame is built with a [Pass]: widgets add [Command] values to ordered
// layers (background, connective lines, glyphs, highlights, labels) and
// flatten them into a [List] that begins with a Clear. Lists are plain data;
// the sink package turns them into SVG, PNG, JSON, or MessagePack.
//
// Colors are HSLA values resolved from a [Palette] of theme tokens such as
// "primary" or "sire", or parsed from literal hsl() strings.
package draw
