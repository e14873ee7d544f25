// Package model defines output format independent document representation
// produced by HTML conversion and consumed by serializers.
package model

import (
	"fmt"
	"iter"
	"strings"
)

// RGB is a fully opaque color.
type RGB struct {
	R, G, B uint8
}

// Hex returns color as RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Alignment of paragraph text.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unset"
	}
}

// ListStyle marks paragraphs which are list items.
type ListStyle int

const (
	ListNone ListStyle = iota
	ListBullet
	ListNumbered
)

func (l ListStyle) String() string {
	switch l {
	case ListBullet:
		return "bullet"
	case ListNumbered:
		return "numbered"
	default:
		return "none"
	}
}

// Run is a span of text sharing single formatting. A run may instead carry
// explicit line break or inline picture.
type Run struct {
	Text       string
	Bold       bool
	Italic     bool
	Underline  bool
	Color      *RGB
	Highlight  *RGB
	FontFamily string
	FontSize   int // points, 0 when not set

	Break bool
	Image *Image
}

// SameFormat compares formatting of two text runs.
func (r Run) SameFormat(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Underline == o.Underline &&
		sameColor(r.Color, o.Color) && sameColor(r.Highlight, o.Highlight) &&
		r.FontFamily == o.FontFamily && r.FontSize == o.FontSize
}

func sameColor(a, b *RGB) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Paragraph is a sequence of runs with paragraph level properties.
type Paragraph struct {
	Runs  []Run
	Align Alignment
	List  ListStyle
	// ListID identifies list paragraph belongs to, numbering restarts for
	// every list.
	ListID int
	// IndentLeft in inches.
	IndentLeft float64
}

// AddRun appends run to the paragraph.
func (p *Paragraph) AddRun(r Run) {
	p.Runs = append(p.Runs, r)
}

// IsEmpty reports paragraph without runs.
func (p *Paragraph) IsEmpty() bool {
	return len(p.Runs) == 0
}

// Text returns plain text of the paragraph, breaks become new lines and
// pictures are omitted.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		if r.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Cell of a table, blank cell has no paragraphs.
type Cell struct {
	Paragraphs []*Paragraph
}

func (c Cell) IsBlank() bool {
	return len(c.Paragraphs) == 0
}

// Text returns plain text of all cell paragraphs joined by new lines.
func (c Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// Table is a rectangular grid of cells.
type Table struct {
	Rows [][]Cell
}

// NewTable creates rows x cols grid of blank cells.
func NewTable(rows, cols int) *Table {
	t := &Table{Rows: make([][]Cell, rows)}
	for i := range t.Rows {
		t.Rows[i] = make([]Cell, cols)
	}
	return t
}

// Cols returns number of columns.
func (t *Table) Cols() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Image is an embeddable picture.
type Image struct {
	Data     []byte
	MimeType string
	// Source is the src attribute as written, used for logging only.
	Source string
	// Width is display width in inches.
	Width       float64
	PixelWidth  int
	PixelHeight int
}

// Height returns display height in inches keeping aspect ratio.
func (im *Image) Height() float64 {
	if im.PixelWidth <= 0 || im.PixelHeight <= 0 {
		return im.Width
	}
	return im.Width * float64(im.PixelHeight) / float64(im.PixelWidth)
}

// Ext returns file extension matching image type.
func (im *Image) Ext() string {
	switch im.MimeType {
	case "image/jpeg":
		return ".jpeg"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

type PageBreak struct{}

// LineBreak is a standalone break between top level nodes. Builder never
// produces it (br outside of paragraph becomes empty paragraph), serializers
// accept it for documents assembled by other code.
type LineBreak struct{}

// Node is a top level document element: *Paragraph, *Table, *Image,
// PageBreak or LineBreak.
type Node interface {
	documentNode()
}

func (*Paragraph) documentNode() {}
func (*Table) documentNode()     {}
func (*Image) documentNode()     {}
func (PageBreak) documentNode()  {}
func (LineBreak) documentNode()  {}

// Document is the conversion result. Nodes are only ever appended.
type Document struct {
	Title string
	Nodes []Node
}

func New() *Document {
	return &Document{}
}

// Append adds node to the end of the document.
func (d *Document) Append(n Node) {
	d.Nodes = append(d.Nodes, n)
}

// Paragraphs iterates over top level paragraphs.
func (d *Document) Paragraphs() iter.Seq[*Paragraph] {
	return func(yield func(*Paragraph) bool) {
		for _, n := range d.Nodes {
			if p, ok := n.(*Paragraph); ok && !yield(p) {
				return
			}
		}
	}
}

// Images returns all pictures in document order: top level, inline and in
// table cells.
func (d *Document) Images() []*Image {
	var out []*Image
	fromParagraph := func(p *Paragraph) {
		for _, r := range p.Runs {
			if r.Image != nil {
				out = append(out, r.Image)
			}
		}
	}
	for _, n := range d.Nodes {
		switch v := n.(type) {
		case *Image:
			out = append(out, v)
		case *Paragraph:
			fromParagraph(v)
		case *Table:
			for _, row := range v.Rows {
				for _, c := range row {
					for _, p := range c.Paragraphs {
						fromParagraph(p)
					}
				}
			}
		}
	}
	return out
}
