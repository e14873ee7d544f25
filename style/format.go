package style

import (
	"docconv/css"
	"docconv/model"
)

// RunFormat is the part of effective style which applies to text runs.
type RunFormat struct {
	Bold       bool
	Italic     bool
	Underline  bool
	Color      *model.RGB
	Highlight  *model.RGB
	FontFamily string
	FontSize   int
}

// Format interprets effective style. Values which could not be parsed leave
// corresponding formatting unset.
func Format(eff Effective) RunFormat {
	f := RunFormat{
		Bold:       css.IsBold(eff.Get("font-weight")),
		Italic:     css.IsItalic(eff.Get("font-style")),
		Underline:  css.HasUnderline(eff.Get("text-decoration")),
		Color:      parseRGB(eff.Get("color")),
		Highlight:  parseRGB(eff.Get("background-color")),
		FontFamily: css.FirstFontFamily(eff.Get("font-family")),
	}
	if size, ok := css.ParseFontSize(eff.Get("font-size")); ok {
		f.FontSize = size
	}
	return f
}

// Alignment returns paragraph alignment requested by text-align.
func Alignment(eff Effective) (model.Alignment, bool) {
	a, ok := css.ParseTextAlign(eff.Get("text-align"))
	if !ok {
		return model.AlignUnset, false
	}
	switch a {
	case css.AlignLeft:
		return model.AlignLeft, true
	case css.AlignCenter:
		return model.AlignCenter, true
	case css.AlignRight:
		return model.AlignRight, true
	case css.AlignJustify:
		return model.AlignJustify, true
	}
	return model.AlignUnset, false
}

func parseRGB(raw string) *model.RGB {
	if raw == "" {
		return nil
	}
	c, ok := css.ParseColor(raw)
	if !ok {
		return nil
	}
	return &model.RGB{R: c.R, G: c.G, B: c.B}
}

// Run creates text run with this formatting.
func (f RunFormat) Run(text string) model.Run {
	return model.Run{
		Text:       text,
		Bold:       f.Bold,
		Italic:     f.Italic,
		Underline:  f.Underline,
		Color:      f.Color,
		Highlight:  f.Highlight,
		FontFamily: f.FontFamily,
		FontSize:   f.FontSize,
	}
}
