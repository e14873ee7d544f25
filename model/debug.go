package model

import (
	"fmt"
	"strconv"

	"docconv/utils/debug"
)

// String returns human readable tree of the document for debugging.
func (d *Document) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Document (%d nodes)", len(d.Nodes))
	if d.Title != "" {
		tw.TextBlock(1, "title", d.Title)
	}
	for i, n := range d.Nodes {
		switch v := n.(type) {
		case *Paragraph:
			dumpParagraph(tw, 1, i, v)
		case *Table:
			tw.Line(1, "[%d] table %dx%d", i, len(v.Rows), v.Cols())
			for r, row := range v.Rows {
				for c, cell := range row {
					if cell.IsBlank() {
						tw.Line(2, "cell(%d,%d) blank", r, c)
						continue
					}
					tw.Line(2, "cell(%d,%d)", r, c)
					for j, p := range cell.Paragraphs {
						dumpParagraph(tw, 3, j, p)
					}
				}
			}
		case *Image:
			tw.Line(1, "[%d] image %s %dx%dpx width=%.2fin", i, v.MimeType, v.PixelWidth, v.PixelHeight, v.Width)
		case PageBreak:
			tw.Line(1, "[%d] page-break", i)
		case LineBreak:
			tw.Line(1, "[%d] line-break", i)
		}
	}
	return tw.String()
}

func dumpParagraph(tw *debug.TreeWriter, depth, i int, p *Paragraph) {
	var align, list string
	if p.Align != AlignUnset {
		align = p.Align.String()
	}
	if p.List != ListNone {
		list = p.List.String()
	}
	tw.Node(depth, fmt.Sprintf("[%d] paragraph", i), debug.KV("align", align), debug.KV("list", list), debug.Flag("indent", p.IndentLeft > 0))
	for _, r := range p.Runs {
		switch {
		case r.Break:
			tw.Line(depth+1, "break")
		case r.Image != nil:
			tw.Line(depth+1, "image %s", r.Image.MimeType)
		default:
			tw.TextBlock(depth+1, debug.Label("run", runAttrs(r)...), r.Text)
		}
	}
}

func runAttrs(r Run) []debug.Attr {
	attrs := []debug.Attr{
		debug.Flag("b", r.Bold),
		debug.Flag("i", r.Italic),
		debug.Flag("u", r.Underline),
	}
	if r.Color != nil {
		attrs = append(attrs, debug.KV("color", r.Color.Hex()))
	}
	if r.Highlight != nil {
		attrs = append(attrs, debug.KV("bg", r.Highlight.Hex()))
	}
	attrs = append(attrs, debug.KV("font", r.FontFamily))
	if r.FontSize > 0 {
		attrs = append(attrs, debug.KV("size", strconv.Itoa(r.FontSize)))
	}
	return attrs
}
