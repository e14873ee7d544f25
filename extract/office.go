package extract

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"

	"docconv/archive"
)

func parseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse xml: %w", err)
	}
	return doc, nil
}

// readPart opens container and parses one of its XML parts.
func readPart(data []byte, name string) (*zip.Reader, *etree.Document, error) {
	zr, err := archive.Open(data)
	if err != nil {
		return nil, nil, err
	}
	part, err := archive.ReadFile(zr, name)
	if err != nil {
		return nil, nil, err
	}
	doc, err := parseXML(part)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return zr, doc, nil
}

// descendants returns elements under e with given prefix and tag in
// document order.
func descendants(e *etree.Element, space, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Space == space && c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, descendants(c, space, tag)...)
	}
	return out
}

func joinLines(lines []string) string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// wordText appends text of the runs under e. Nested paragraphs are
// skipped, they are visited separately.
func wordText(e *etree.Element, sb *strings.Builder) {
	for _, c := range e.ChildElements() {
		if c.Space != "w" {
			wordText(c, sb)
			continue
		}
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "p":
		default:
			wordText(c, sb)
		}
	}
}

func docxText(data []byte) (string, error) {
	_, doc, err := readPart(data, "word/document.xml")
	if err != nil {
		return "", err
	}
	var lines []string
	for _, p := range descendants(&doc.Element, "w", "p") {
		var sb strings.Builder
		wordText(p, &sb)
		lines = append(lines, sb.String())
	}
	return joinLines(lines), nil
}

func drawingRuns(e *etree.Element, sb *strings.Builder) {
	for _, c := range e.ChildElements() {
		switch {
		case c.Space == "a" && c.Tag == "t":
			sb.WriteString(c.Text())
		case c.Space == "a" && c.Tag == "br":
			sb.WriteByte('\n')
		default:
			drawingRuns(c, sb)
		}
	}
}

// drawingText returns DrawingML paragraphs of e, one per line.
func drawingText(e *etree.Element) []string {
	var lines []string
	for _, p := range descendants(e, "a", "p") {
		var sb strings.Builder
		drawingRuns(p, &sb)
		lines = append(lines, sb.String())
	}
	return lines
}

func pptxText(data []byte) (string, error) {
	zr, err := archive.Open(data)
	if err != nil {
		return "", err
	}

	slides := make(map[string][]byte)
	err = archive.Walk(zr, "ppt/slides/slide", func(f *zip.File) error {
		if !strings.HasSuffix(f.Name, ".xml") {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %q: %w", f.Name, err)
		}
		defer rc.Close()
		if slides[f.Name], err = io.ReadAll(rc); err != nil {
			return fmt.Errorf("unable to read %q: %w", f.Name, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(slides))
	for name := range slides {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	var lines []string
	for _, name := range names {
		doc, err := parseXML(slides[name])
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		lines = append(lines, drawingText(&doc.Element)...)
	}
	return joinLines(lines), nil
}

// sharedStrings returns workbook string table, absent table is not an error.
func sharedStrings(zr *zip.Reader) ([]string, error) {
	part, err := archive.ReadFile(zr, "xl/sharedStrings.xml")
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	doc, err := parseXML(part)
	if err != nil {
		return nil, fmt.Errorf("shared strings: %w", err)
	}
	var out []string
	for _, si := range doc.FindElements("//si") {
		var sb strings.Builder
		for _, t := range descendants(si, "", "t") {
			// phonetic hints are not part of the value
			if t.Parent() != nil && t.Parent().Tag == "rPh" {
				continue
			}
			sb.WriteString(t.Text())
		}
		out = append(out, sb.String())
	}
	return out, nil
}

func cellValue(c *etree.Element, shared []string) string {
	switch c.SelectAttrValue("t", "") {
	case "s":
		v := c.SelectElement("v")
		if v == nil {
			return ""
		}
		i, err := strconv.Atoi(strings.TrimSpace(v.Text()))
		if err != nil || i < 0 || i >= len(shared) {
			return ""
		}
		return shared[i]
	case "inlineStr":
		var sb strings.Builder
		for _, t := range descendants(c, "", "t") {
			sb.WriteString(t.Text())
		}
		return sb.String()
	}
	if v := c.SelectElement("v"); v != nil {
		return v.Text()
	}
	return ""
}

// sheetTargets maps workbook relationship ids to worksheet part names.
func sheetTargets(zr *zip.Reader) (map[string]string, error) {
	targets := make(map[string]string)
	part, err := archive.ReadFile(zr, "xl/_rels/workbook.xml.rels")
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return targets, nil
		}
		return nil, err
	}
	doc, err := parseXML(part)
	if err != nil {
		return nil, fmt.Errorf("workbook relationships: %w", err)
	}
	for _, rel := range doc.FindElements("//Relationship") {
		target := rel.SelectAttrValue("Target", "")
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("xl", target)
		}
		targets[rel.SelectAttrValue("Id", "")] = target
	}
	return targets, nil
}

// columnIndex converts reference like "C7" to zero based column number.
func columnIndex(ref string) int {
	n := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			break
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1
}

func xlsxText(data []byte) (string, error) {
	zr, wb, err := readPart(data, "xl/workbook.xml")
	if err != nil {
		return "", err
	}
	shared, err := sharedStrings(zr)
	if err != nil {
		return "", err
	}

	targets, err := sheetTargets(zr)
	if err != nil {
		return "", err
	}

	var lines []string
	for i, sheet := range wb.FindElements("//sheets/sheet") {
		name, ok := targets[sheet.SelectAttrValue("r:id", "")]
		if !ok {
			name = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
		part, err := archive.ReadFile(zr, name)
		if err != nil {
			return "", err
		}
		doc, err := parseXML(part)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}

		lines = append(lines, fmt.Sprintf("=== Sheet: %s ===", sheet.SelectAttrValue("name", strconv.Itoa(i+1))))
		for _, row := range doc.FindElements("//sheetData/row") {
			var cells []string
			for _, c := range row.SelectElements("c") {
				// gaps in sparse rows are kept as empty fields
				if col := columnIndex(c.SelectAttrValue("r", "")); col >= len(cells) {
					cells = append(cells, make([]string, col-len(cells))...)
				}
				cells = append(cells, cellValue(c, shared))
			}
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}
	return joinLines(lines), nil
}

// odfSpanText appends text of ODF paragraph content expanding space and tab
// elements.
func odfSpanText(e *etree.Element, sb *strings.Builder) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			if t.Space != "text" {
				odfSpanText(t, sb)
				continue
			}
			switch t.Tag {
			case "s":
				n, err := strconv.Atoi(t.SelectAttrValue("text:c", "1"))
				if err != nil || n < 1 {
					n = 1
				}
				sb.WriteString(strings.Repeat(" ", n))
			case "tab":
				sb.WriteByte('\t')
			case "line-break":
				sb.WriteByte('\n')
			case "note":
			default:
				odfSpanText(t, sb)
			}
		}
	}
}

func odfParagraphs(e *etree.Element) []string {
	var lines []string
	for _, p := range e.ChildElements() {
		if p.Space != "text" || (p.Tag != "p" && p.Tag != "h") {
			lines = append(lines, odfParagraphs(p)...)
			continue
		}
		var sb strings.Builder
		odfSpanText(p, &sb)
		lines = append(lines, sb.String())
	}
	return lines
}

func odfText(data []byte) (string, error) {
	_, doc, err := readPart(data, "content.xml")
	if err != nil {
		return "", err
	}
	body := doc.FindElement("//office:body")
	if body == nil {
		return "", nil
	}

	tables := descendants(body, "table", "table")
	if spreadsheet := body.FindElement("office:spreadsheet"); spreadsheet == nil || len(tables) == 0 {
		return joinLines(odfParagraphs(body)), nil
	}

	var lines []string
	for i, table := range tables {
		lines = append(lines, fmt.Sprintf("=== Sheet: %s ===", table.SelectAttrValue("table:name", strconv.Itoa(i+1))))
		for _, row := range descendants(table, "table", "table-row") {
			var cells []string
			for _, c := range row.ChildElements() {
				if c.Space != "table" || (c.Tag != "table-cell" && c.Tag != "covered-table-cell") {
					continue
				}
				text := strings.Join(odfParagraphs(c), "\n")
				repeat, err := strconv.Atoi(c.SelectAttrValue("table:number-columns-repeated", "1"))
				if err != nil || repeat < 1 || text == "" {
					// repeated empty cells pad rows up to the sheet width
					repeat = 1
				}
				for range repeat {
					cells = append(cells, text)
				}
			}
			lines = append(lines, strings.TrimRight(strings.Join(cells, "\t"), "\t"))
		}
	}
	return joinLines(lines), nil
}
