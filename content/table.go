package content

import (
	"go.uber.org/zap"

	"docconv/dom"
	"docconv/model"
	"docconv/style"
)

func isTable(n dom.Node) bool {
	return n.Tag() == "table"
}

func cellElements(row dom.Node) []dom.Node {
	var cells []dom.Node
	for _, c := range row.Children() {
		if tag := c.Tag(); tag == "td" || tag == "th" {
			cells = append(cells, c)
		}
	}
	return cells
}

// table builds rectangular grid out of table rows. Shorter rows are padded
// with blank cells. Rows of nested tables do not belong to this table.
func (b *Builder) table(el dom.Node) *model.Table {
	rows := dom.FindAll(el, "tr", isTable)

	grid := make([][]dom.Node, 0, len(rows))
	cols := 0
	for _, row := range rows {
		cells := cellElements(row)
		cols = max(cols, len(cells))
		grid = append(grid, cells)
	}
	if len(grid) == 0 || cols == 0 {
		b.log.Debug("Skipping table without cells", zap.Int("rows", len(grid)))
		return nil
	}

	t := model.NewTable(len(grid), cols)
	for r, cells := range grid {
		for c, cell := range cells {
			t.Rows[r][c] = model.Cell{Paragraphs: []*model.Paragraph{b.cell(cell)}}
		}
	}
	return t
}

func (b *Builder) cell(el dom.Node) *model.Paragraph {
	p := &model.Paragraph{}
	b.extractInline(el, p)
	if el.Tag() == "th" {
		for i := range p.Runs {
			p.Runs[i].Bold = true
		}
	}
	return p
}

// list emits one paragraph per direct li child. Numbering of every list
// starts anew.
func (b *Builder) list(el dom.Node) {
	items := dom.ChildElements(el, "li")
	if len(items) == 0 {
		return
	}
	b.lists++
	kind := model.ListBullet
	if el.Tag() == "ol" {
		kind = model.ListNumbered
	}
	for _, li := range items {
		p := &model.Paragraph{List: kind, ListID: b.lists}
		b.extractInline(li, p)
		b.doc.Append(p)
	}
}

// extractInline fills paragraph with flattened content of table cell or list
// item. Direct text uses owner style, every child element becomes single run
// formatted by its own style.
func (b *Builder) extractInline(owner dom.Node, p *model.Paragraph) {
	eff := b.resolve(owner)
	if a, ok := style.Alignment(eff); ok {
		p.Align = a
	}
	format := style.Format(eff)

	for _, c := range owner.Children() {
		switch Classify(c) {
		case KindText:
			appendText(p, c.Text(), format)
		case KindBreak:
			p.AddRun(model.Run{Break: true})
		case KindImage:
			b.inlineImage(c, p, format)
		case KindIgnored:
		default:
			if text := c.Text(); text != "" {
				appendText(p, text, style.Format(b.resolve(c)))
			}
			for _, img := range dom.FindAll(c, "img", nil) {
				b.inlineImage(img, p, format)
			}
		}
	}
	trimParagraph(p)
}

func (b *Builder) inlineImage(el dom.Node, p *model.Paragraph, format style.RunFormat) {
	img, placeholder := b.loadImage(el)
	switch {
	case img != nil:
		p.AddRun(model.Run{Image: img})
	case placeholder != "":
		appendText(p, placeholder, format)
	}
}
