package docx

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"docconv/common"
	"docconv/config"
	"docconv/model"
)

const (
	emuPerInch   = 914400
	twipsPerInch = 1440
	mmPerInch    = 25.4
)

type mediaFile struct {
	rid    string
	target string
	ext    string
	mime   string
	data   []byte
}

// packageWriter keeps state shared between document body and package parts
// referring to it.
type packageWriter struct {
	cfg *config.DocumentConfig
	log *zap.Logger

	media    []mediaFile
	images   map[*model.Image]string // picture -> relationship id
	numIDs   map[int]int             // list id -> numbering instance
	numbered []int
	drawings int
}

func newPackageWriter(cfg *config.DocumentConfig, log *zap.Logger) *packageWriter {
	return &packageWriter{
		cfg:    cfg,
		log:    log,
		images: make(map[*model.Image]string),
		numIDs: make(map[int]int),
	}
}

// pageSize returns page width and height in twips.
func pageSize(size common.PageSize) (int, int) {
	if size == common.PageSizeLetter {
		return 12240, 15840
	}
	return 11906, 16838
}

func (pw *packageWriter) margin() int {
	return int(math.Round(pw.cfg.Page.Margin / mmPerInch * twipsPerInch))
}

func (pw *packageWriter) document(d *model.Document) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)
	body := wElement(root, "body")

	for _, n := range d.Nodes {
		switch v := n.(type) {
		case *model.Paragraph:
			pw.paragraph(body, v)
		case *model.Table:
			pw.table(body, v)
		case *model.Image:
			pw.drawing(wElement(wElement(body, "p"), "r"), v)
		case model.PageBreak:
			wElement(wElement(wElement(body, "p"), "r"), "br", "type", "page")
		case model.LineBreak:
			wElement(wElement(wElement(body, "p"), "r"), "br")
		default:
			panic(fmt.Sprintf("unexpected document node %T", n))
		}
	}
	// word requires paragraph after trailing table
	if len(d.Nodes) > 0 {
		if _, ok := d.Nodes[len(d.Nodes)-1].(*model.Table); ok {
			wElement(body, "p")
		}
	}

	w, h := pageSize(pw.cfg.Page.Size)
	m := strconv.Itoa(pw.margin())
	sect := wElement(body, "sectPr")
	wElement(sect, "pgSz", "w", strconv.Itoa(w), "h", strconv.Itoa(h))
	wElement(sect, "pgMar", "top", m, "right", m, "bottom", m, "left", m, "header", "708", "footer", "708", "gutter", "0")
	return doc
}

func (pw *packageWriter) listNumID(p *model.Paragraph) int {
	if p.List == model.ListBullet {
		return bulletNumID
	}
	id, ok := pw.numIDs[p.ListID]
	if !ok {
		// numbering instance ids start after the bullet one
		id = len(pw.numbered) + bulletNumID + 1
		pw.numIDs[p.ListID] = id
		pw.numbered = append(pw.numbered, id)
	}
	return id
}

func (pw *packageWriter) paragraph(parent *etree.Element, p *model.Paragraph) {
	para := wElement(parent, "p")

	if p.List != model.ListNone || p.IndentLeft > 0 || p.Align != model.AlignUnset {
		pPr := wElement(para, "pPr")
		switch p.List {
		case model.ListBullet:
			wElement(pPr, "pStyle", "val", "ListBullet")
		case model.ListNumbered:
			wElement(pPr, "pStyle", "val", "ListNumber")
		}
		if p.List != model.ListNone {
			numPr := wElement(pPr, "numPr")
			wElement(numPr, "ilvl", "val", "0")
			wElement(numPr, "numId", "val", strconv.Itoa(pw.listNumID(p)))
		}
		if p.IndentLeft > 0 {
			wElement(pPr, "ind", "left", strconv.Itoa(int(math.Round(p.IndentLeft*twipsPerInch))))
		}
		if jc := justification(p.Align); jc != "" {
			wElement(pPr, "jc", "val", jc)
		}
	}

	for i := range p.Runs {
		pw.run(para, &p.Runs[i])
	}
}

func justification(a model.Alignment) string {
	switch a {
	case model.AlignLeft:
		return "left"
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	}
	return ""
}

func (pw *packageWriter) run(parent *etree.Element, r *model.Run) {
	run := wElement(parent, "r")
	switch {
	case r.Break:
		wElement(run, "br")
		return
	case r.Image != nil:
		pw.drawing(run, r.Image)
		return
	}

	if rPr := runProperties(r); rPr != nil {
		run.AddChild(rPr)
	}
	t := wElement(run, "t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(r.Text)
}

// runProperties returns nil for unformatted run. Element order follows
// CT_RPr sequence.
func runProperties(r *model.Run) *etree.Element {
	rPr := etree.NewElement("w:rPr")
	if r.FontFamily != "" {
		wElement(rPr, "rFonts", "ascii", r.FontFamily, "hAnsi", r.FontFamily, "cs", r.FontFamily)
	}
	if r.Bold {
		wElement(rPr, "b")
	}
	if r.Italic {
		wElement(rPr, "i")
	}
	if r.Color != nil {
		wElement(rPr, "color", "val", r.Color.Hex())
	}
	if r.FontSize > 0 {
		half := strconv.Itoa(r.FontSize * 2)
		wElement(rPr, "sz", "val", half)
		wElement(rPr, "szCs", "val", half)
	}
	if r.Underline {
		wElement(rPr, "u", "val", "single")
	}
	if r.Highlight != nil {
		wElement(rPr, "shd", "val", "clear", "color", "auto", "fill", r.Highlight.Hex())
	}
	if len(rPr.ChildElements()) == 0 {
		return nil
	}
	return rPr
}

func (pw *packageWriter) table(parent *etree.Element, t *model.Table) {
	cols := t.Cols()
	if cols == 0 {
		return
	}
	pageW, _ := pageSize(pw.cfg.Page.Size)
	colW := strconv.Itoa((pageW - 2*pw.margin()) / cols)

	tbl := wElement(parent, "tbl")
	tblPr := wElement(tbl, "tblPr")
	wElement(tblPr, "tblStyle", "val", "TableGrid")
	wElement(tblPr, "tblW", "w", "0", "type", "auto")
	wElement(tblPr, "tblLook", "val", "04A0", "firstRow", "1", "lastRow", "0", "firstColumn", "1", "lastColumn", "0", "noHBand", "0", "noVBand", "1")

	grid := wElement(tbl, "tblGrid")
	for range cols {
		wElement(grid, "gridCol", "w", colW)
	}

	for _, row := range t.Rows {
		tr := wElement(tbl, "tr")
		for _, cell := range row {
			tc := wElement(tr, "tc")
			wElement(wElement(tc, "tcPr"), "tcW", "w", colW, "type", "dxa")
			if cell.IsBlank() {
				// cell must contain at least one paragraph
				wElement(tc, "p")
				continue
			}
			for _, p := range cell.Paragraphs {
				pw.paragraph(tc, p)
			}
		}
	}
}

func (pw *packageWriter) addMedia(img *model.Image) string {
	if rid, ok := pw.images[img]; ok {
		return rid
	}
	n := len(pw.media) + 1
	m := mediaFile{
		rid:    fmt.Sprintf("rIdImage%d", n),
		target: fmt.Sprintf("media/image%d%s", n, img.Ext()),
		ext:    img.Ext(),
		mime:   img.MimeType,
		data:   img.Data,
	}
	if m.mime == "" {
		m.mime = "image/png"
	}
	pw.media = append(pw.media, m)
	pw.images[img] = m.rid
	pw.log.Debug("Embedding image", zap.String("target", m.target), zap.String("source", img.Source))
	return m.rid
}

func (pw *packageWriter) drawing(run *etree.Element, img *model.Image) {
	rid := pw.addMedia(img)
	pw.drawings++
	id := strconv.Itoa(pw.drawings)
	cx := strconv.Itoa(int(math.Round(img.Width * emuPerInch)))
	cy := strconv.Itoa(int(math.Round(img.Height() * emuPerInch)))
	name := "Picture " + id

	inline := wElement(run, "drawing").CreateElement("wp:inline")
	for _, a := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(a, "0")
	}
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", cx)
	extent.CreateAttr("cy", cy)
	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", id)
	docPr.CreateAttr("name", name)
	inline.CreateElement("wp:cNvGraphicFramePr").CreateElement("a:graphicFrameLocks").CreateAttr("noChangeAspect", "1")

	data := inline.CreateElement("a:graphic").CreateElement("a:graphicData")
	data.CreateAttr("uri", nsPic)
	pic := data.CreateElement("pic:pic")

	nv := pic.CreateElement("pic:nvPicPr")
	cNvPr := nv.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", id)
	cNvPr.CreateAttr("name", name)
	nv.CreateElement("pic:cNvPicPr")

	fill := pic.CreateElement("pic:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", rid)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", cx)
	ext.CreateAttr("cy", cy)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}
