package css

import (
	"image/color"
	"strconv"
	"strings"
)

// Property value interpretation. Malformed values are never an error, callers
// get ok == false and leave formatting unapplied.

var namedColors = map[string]color.RGBA{
	"red":     rgb(255, 0, 0),
	"green":   rgb(0, 128, 0),
	"blue":    rgb(0, 0, 255),
	"black":   rgb(0, 0, 0),
	"white":   rgb(255, 255, 255),
	"gray":    rgb(128, 128, 128),
	"grey":    rgb(128, 128, 128),
	"yellow":  rgb(255, 255, 0),
	"orange":  rgb(255, 165, 0),
	"purple":  rgb(128, 0, 128),
	"pink":    rgb(255, 192, 203),
	"brown":   rgb(165, 42, 42),
	"navy":    rgb(0, 0, 128),
	"teal":    rgb(0, 128, 128),
	"lime":    rgb(0, 255, 0),
	"cyan":    rgb(0, 255, 255),
	"magenta": rgb(255, 0, 255),
	"silver":  rgb(192, 192, 192),
	"maroon":  rgb(128, 0, 0),
	"olive":   rgb(128, 128, 0),
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ParseColor understands named colors, #rgb, #rrggbb and rgb(r, g, b).
func ParseColor(raw string) (color.RGBA, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))

	if hex, found := strings.CutPrefix(raw, "#"); found {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return rgb(uint8(v>>16), uint8(v>>8), uint8(v)), true
	}

	if inner, found := strings.CutPrefix(raw, "rgb("); found {
		inner, found = strings.CutSuffix(inner, ")")
		if !found {
			return color.RGBA{}, false
		}
		parts := strings.Split(inner, ",")
		if len(parts) != 3 {
			return color.RGBA{}, false
		}
		var c [3]uint8
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return color.RGBA{}, false
			}
			c[i] = uint8(min(max(v, 0), 255))
		}
		return rgb(c[0], c[1], c[2]), true
	}

	c, ok := namedColors[raw]
	return c, ok
}

var namedSizes = map[string]int{
	"xx-small": 8,
	"x-small":  10,
	"small":    12,
	"medium":   14,
	"large":    16,
	"x-large":  18,
	"xx-large": 24,
}

// emPoints is the size of 1em in points.
const emPoints = 14

// ParseFontSize returns font size in whole points. Keywords, px, pt and em
// are recognized, fractional values are truncated.
func ParseFontSize(raw string) (int, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if size, ok := namedSizes[raw]; ok {
		return size, true
	}

	for _, unit := range []struct {
		suffix string
		scale  float64
	}{
		{"px", 1},
		{"pt", 1},
		{"em", emPoints},
	} {
		num, found := strings.CutSuffix(raw, unit.suffix)
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil || v <= 0 {
			return 0, false
		}
		return int(v * unit.scale), true
	}
	return 0, false
}

// IsBold reports if font-weight value selects bold face.
func IsBold(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bold", "bolder", "700", "800", "900":
		return true
	}
	return false
}

// IsItalic reports if font-style value selects slanted face.
func IsItalic(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "italic", "oblique":
		return true
	}
	return false
}

// HasUnderline reports if text-decoration value includes underline.
func HasUnderline(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "underline")
}

// FirstFontFamily returns the first family name of a font-family list without
// quotes.
func FirstFontFamily(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(first), `"'`))
}

// TextAlign is a recognized text-align value.
type TextAlign int

const (
	AlignNone TextAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

// ParseTextAlign maps text-align values, start and end are treated as left and
// right.
func ParseTextAlign(raw string) (TextAlign, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left", "start":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right", "end":
		return AlignRight, true
	case "justify":
		return AlignJustify, true
	}
	return AlignNone, false
}
