package docx

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"docconv/misc"
)

const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic     = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCore    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsApp     = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	relDoc    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCore   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relApp    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumber = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctMain      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"

	// abstract numbering definitions
	abstractBullet  = 0
	abstractDecimal = 1
	// all bullet lists share single numbering instance
	bulletNumID = 1
)

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func (pw *packageWriter) contentTypes() *etree.Document {
	doc := newXMLDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsTypes)

	addDefault := func(ext, ct string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", ct)
	}
	addDefault("rels", ctRels)
	addDefault("xml", "application/xml")

	exts := make(map[string]string)
	for _, m := range pw.media {
		exts[strings.TrimPrefix(m.ext, ".")] = m.mime
	}
	for _, ext := range slices.Sorted(maps.Keys(exts)) {
		addDefault(ext, exts[ext])
	}

	for _, o := range []struct{ part, ct string }{
		{"/word/document.xml", ctMain},
		{"/word/styles.xml", ctStyles},
		{"/word/numbering.xml", ctNumbering},
		{"/docProps/core.xml", ctCore},
		{"/docProps/app.xml", ctApp},
	} {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", o.part)
		e.CreateAttr("ContentType", o.ct)
	}
	return doc
}

func addRelationship(parent *etree.Element, id, typ, target string) {
	rel := parent.CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", typ)
	rel.CreateAttr("Target", target)
}

func packageRels() *etree.Document {
	doc := newXMLDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRels)
	addRelationship(rels, "rId1", relDoc, "word/document.xml")
	addRelationship(rels, "rId2", relCore, "docProps/core.xml")
	addRelationship(rels, "rId3", relApp, "docProps/app.xml")
	return doc
}

func (pw *packageWriter) documentRels() *etree.Document {
	doc := newXMLDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRels)
	addRelationship(rels, "rIdStyles", relStyles, "styles.xml")
	addRelationship(rels, "rIdNumbering", relNumber, "numbering.xml")
	for _, m := range pw.media {
		addRelationship(rels, m.rid, relImage, m.target)
	}
	return doc
}

func (pw *packageWriter) coreProps(title string) *etree.Document {
	doc := newXMLDocument()
	core := doc.CreateElement("cp:coreProperties")
	core.CreateAttr("xmlns:cp", nsCore)
	core.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	core.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	core.CreateAttr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	core.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	if title != "" {
		core.CreateElement("dc:title").SetText(title)
	}
	creator := pw.cfg.Creator
	if creator == "" {
		creator = misc.GetAppName()
	}
	core.CreateElement("dc:creator").SetText(creator)
	core.CreateElement("dc:identifier").SetText("urn:uuid:" + uuid.New().String())

	now := time.Now().UTC().Format(time.RFC3339)
	for _, name := range []string{"dcterms:created", "dcterms:modified"} {
		e := core.CreateElement(name)
		e.CreateAttr("xsi:type", "dcterms:W3CDTF")
		e.SetText(now)
	}
	return doc
}

func appProps() *etree.Document {
	doc := newXMLDocument()
	props := doc.CreateElement("Properties")
	props.CreateAttr("xmlns", nsApp)
	props.CreateElement("Application").SetText(fmt.Sprintf("%s %s", misc.GetAppName(), misc.GetVersion()))
	return doc
}

func wElement(parent *etree.Element, name string, attrs ...string) *etree.Element {
	e := parent.CreateElement("w:" + name)
	for i := 0; i+1 < len(attrs); i += 2 {
		e.CreateAttr("w:"+attrs[i], attrs[i+1])
	}
	return e
}

func styles() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	defaults := wElement(root, "docDefaults")
	rPr := wElement(wElement(defaults, "rPrDefault"), "rPr")
	wElement(rPr, "rFonts", "ascii", "Calibri", "hAnsi", "Calibri", "cs", "Calibri", "eastAsia", "Calibri")
	wElement(rPr, "sz", "val", "22")
	wElement(rPr, "szCs", "val", "22")
	pPr := wElement(wElement(defaults, "pPrDefault"), "pPr")
	wElement(pPr, "spacing", "after", "160", "line", "259", "lineRule", "auto")

	normal := wElement(root, "style", "type", "paragraph", "default", "1", "styleId", "Normal")
	wElement(normal, "name", "val", "Normal")
	wElement(normal, "qFormat")

	for _, s := range []struct{ id, name string }{
		{"ListBullet", "List Bullet"},
		{"ListNumber", "List Number"},
	} {
		st := wElement(root, "style", "type", "paragraph", "styleId", s.id)
		wElement(st, "name", "val", s.name)
		wElement(st, "basedOn", "val", "Normal")
		wElement(wElement(st, "pPr"), "contextualSpacing")
	}

	grid := wElement(root, "style", "type", "table", "styleId", "TableGrid")
	wElement(grid, "name", "val", "Table Grid")
	tblPr := wElement(grid, "tblPr")
	borders := wElement(tblPr, "tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		wElement(borders, side, "val", "single", "sz", "4", "space", "0", "color", "auto")
	}
	margins := wElement(tblPr, "tblCellMar")
	wElement(margins, "left", "w", "108", "type", "dxa")
	wElement(margins, "right", "w", "108", "type", "dxa")
	return doc
}

func (pw *packageWriter) numbering() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:numbering")
	root.CreateAttr("xmlns:w", nsW)

	for _, a := range []struct {
		id     int
		format string
		text   string
	}{
		{abstractBullet, "bullet", "•"},
		{abstractDecimal, "decimal", "%1."},
	} {
		abs := wElement(root, "abstractNum", "abstractNumId", fmt.Sprint(a.id))
		wElement(abs, "multiLevelType", "val", "singleLevel")
		lvl := wElement(abs, "lvl", "ilvl", "0")
		wElement(lvl, "start", "val", "1")
		wElement(lvl, "numFmt", "val", a.format)
		wElement(lvl, "lvlText", "val", a.text)
		wElement(lvl, "lvlJc", "val", "left")
		wElement(wElement(lvl, "pPr"), "ind", "left", "720", "hanging", "360")
	}

	bullet := wElement(root, "num", "numId", fmt.Sprint(bulletNumID))
	wElement(bullet, "abstractNumId", "val", fmt.Sprint(abstractBullet))

	// every numbered list gets own instance so numbering restarts
	for _, id := range pw.numbered {
		num := wElement(root, "num", "numId", fmt.Sprint(id))
		wElement(num, "abstractNumId", "val", fmt.Sprint(abstractDecimal))
		override := wElement(num, "lvlOverride", "ilvl", "0")
		wElement(override, "startOverride", "val", "1")
	}
	return doc
}
