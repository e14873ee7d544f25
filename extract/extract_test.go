package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"docconv/common"
)

func buildContainer(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range parts {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(body)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close container: %v", err)
	}
	return buf.Bytes()
}

func extractString(t *testing.T, name string, data []byte) *Result {
	t.Helper()
	res, err := Extract(context.Background(), bytes.NewReader(data), name, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Extract(%s) error = %v", name, err)
	}
	return res
}

const (
	docxBody = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> world</w:t></w:r></w:p>
<w:p></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>
</w:body>
</w:document>`

	slideTmpl = `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>
<a:p><a:r><a:t>%s</a:t></a:r></a:p>
<a:p><a:r><a:t>line</a:t></a:r><a:br/><a:r><a:t>two</a:t></a:r></a:p>
</p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`

	workbook = `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Data" sheetId="1" r:id="rId1"/><sheet name="Empty" sheetId="2" r:id="rId2"/></sheets>
</workbook>`

	workbookRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/second.xml"/>
</Relationships>`

	sharedStringsXML = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>name</t></si><si><r><t>va</t></r><r><t>lue</t></r></si>
</sst>`

	sheet1 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2"><v>42</v></c><c r="C2" t="inlineStr"><is><t>inline</t></is></c></row>
</sheetData>
</worksheet>`

	sheet2 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData/></worksheet>`

	odtContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>
<text:h>Title</text:h>
<text:p>one<text:s text:c="3"/>two<text:tab/>three</text:p>
<text:list><text:list-item><text:p>item <text:span>span</text:span></text:p></text:list-item></text:list>
<text:p/>
</office:text></office:body>
</office:document-content>`

	odsContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
<office:body><office:spreadsheet>
<table:table table:name="Prices">
<table:table-row><table:table-cell><text:p>apple</text:p></table:table-cell><table:table-cell table:number-columns-repeated="2"><text:p>1</text:p></table:table-cell><table:table-cell table:number-columns-repeated="1000"/></table:table-row>
<table:table-row table:number-rows-repeated="100"><table:table-cell table:number-columns-repeated="1000"/></table:table-row>
</table:table>
</office:spreadsheet></office:body>
</office:document-content>`
)

func TestExtract_Text(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want string
		fmt  common.InputFmt
	}{
		{"plain", "a.TXT", []byte("line one\nстрока"), "line one\nстрока", common.InputFmtTxt},
		{"markdown", "readme.md", []byte("# Title\n\n*x*"), "# Title\n\n*x*", common.InputFmtMd},
		{"legacy encoding", "old.txt", []byte{'c', 'a', 'f', 0xE9}, "café", common.InputFmtTxt},
		{"csv", "t.csv", []byte("a,b,c\n1,\"2,5\",3\nlonely\n"), "a\tb\tc\n1\t2,5\t3\nlonely", common.InputFmtCsv},
		{"json", "d.json", []byte(`{"a":[1,2],"b":"<x>"}`), "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": \"<x>\"\n}", common.InputFmtJson},
		{"yaml", "c.yml", []byte("name: тест\nlist:\n  - 1\n  - <b>\n"), "{\n  \"list\": [\n    1,\n    \"<b>\"\n  ],\n  \"name\": \"тест\"\n}", common.InputFmtYaml},
		{"yaml stream", "c.yaml", []byte("a: 1\n---\n7: x\n"), "{\n  \"a\": 1\n}\n{\n  \"7\": \"x\"\n}", common.InputFmtYaml},
		{"xml", "f.xml", []byte("<root><a> first </a><b>\n</b><c>second<d>third</d></c></root>"), "first\nsecond\nthird", common.InputFmtXml},
		{"html", "p.htm", []byte("<html><head><title>T</title><style>p{}</style></head><body><h1>Head</h1><p>Some <b>bold</b>\n text</p><script>x()</script><ul><li>one</li><li>two</li></ul>tail<br>end</body></html>"), "Head\nSome bold text\none\ntwo\ntail\nend", common.InputFmtHtml},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extractString(t, tt.file, tt.data)
			if res.Text != tt.want {
				t.Errorf("Text = %q, want %q", res.Text, tt.want)
			}
			if res.Format != tt.fmt {
				t.Errorf("Format = %v, want %v", res.Format, tt.fmt)
			}
			if res.Size != len(tt.data) {
				t.Errorf("Size = %d, want %d", res.Size, len(tt.data))
			}
		})
	}
}

func TestExtract_Docx(t *testing.T) {
	data := buildContainer(t, map[string]string{"word/document.xml": docxBody})
	res := extractString(t, "doc.docx", data)
	want := "Hello world\ncell\na\tb\nc"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestExtract_Pptx(t *testing.T) {
	data := buildContainer(t, map[string]string{
		"ppt/slides/slide10.xml":            strings.Replace(slideTmpl, "%s", "ten", 1),
		"ppt/slides/slide2.xml":             strings.Replace(slideTmpl, "%s", "two", 1),
		"ppt/slides/slide1.xml":             strings.Replace(slideTmpl, "%s", "one", 1),
		"ppt/slides/_rels/slide1.xml.rels":  "<Relationships/>",
		"ppt/slideLayouts/slideLayout1.xml": strings.Replace(slideTmpl, "%s", "layout", 1),
	})
	res := extractString(t, "deck.pptx", data)
	want := "one\nline\ntwo\ntwo\nline\ntwo\nten\nline\ntwo"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestExtract_Xlsx(t *testing.T) {
	data := buildContainer(t, map[string]string{
		"xl/workbook.xml":            workbook,
		"xl/_rels/workbook.xml.rels": workbookRels,
		"xl/sharedStrings.xml":       sharedStringsXML,
		"xl/worksheets/sheet1.xml":   sheet1,
		"xl/worksheets/second.xml":   sheet2,
	})
	res := extractString(t, "book.xlsx", data)
	want := "=== Sheet: Data ===\nname\tvalue\n42\t\tinline\n=== Sheet: Empty ==="
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestExtract_ODF(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		res := extractString(t, "doc.odt", buildContainer(t, map[string]string{"content.xml": odtContent}))
		want := "Title\none   two\tthree\nitem span"
		if res.Text != want {
			t.Errorf("Text = %q, want %q", res.Text, want)
		}
	})
	t.Run("presentation uses same parts", func(t *testing.T) {
		res := extractString(t, "deck.odp", buildContainer(t, map[string]string{"content.xml": odtContent}))
		if res.Format != common.InputFmtOdp || !strings.HasPrefix(res.Text, "Title\n") {
			t.Errorf("unexpected result %v %q", res.Format, res.Text)
		}
	})
	t.Run("spreadsheet", func(t *testing.T) {
		res := extractString(t, "sheet.ods", buildContainer(t, map[string]string{"content.xml": odsContent}))
		want := "=== Sheet: Prices ===\napple\t1\t1"
		if res.Text != want {
			t.Errorf("Text = %q, want %q", res.Text, want)
		}
	})
}

func TestExtract_Errors(t *testing.T) {
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		file        string
		data        []byte
		unsupported bool
	}{
		{"unknown extension", "notes.xyz", []byte("plain text"), true},
		{"known signature of unsupported format", "picture", pngData.Bytes(), true},
		{"broken json", "a.json", []byte("{"), false},
		{"broken xml", "a.xml", []byte("<a><b></a>"), false},
		{"docx is not a container", "a.docx", []byte("not a zip"), false},
		{"docx without document part", "a.docx", buildContainer(t, map[string]string{"word/styles.xml": "<x/>"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(context.Background(), bytes.NewReader(tt.data), tt.file, zaptest.NewLogger(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrUnsupportedFormat); got != tt.unsupported {
				t.Errorf("errors.Is(ErrUnsupportedFormat) = %v, want %v (%v)", got, tt.unsupported, err)
			}
		})
	}
}

func TestExtract_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Extract(ctx, strings.NewReader("x"), "a.txt", zaptest.NewLogger(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]common.InputFmt{
		"a.Json":     common.InputFmtJson,
		"b.markdown": common.InputFmtMd,
		"c.XHTML":    common.InputFmtHtml,
		"d.ods":      common.InputFmtOds,
	}
	for name, want := range tests {
		got, err := Detect(name, []byte("x"))
		if err != nil || got != want {
			t.Errorf("Detect(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
}

func TestColumnIndex(t *testing.T) {
	tests := map[string]int{"A1": 0, "C7": 2, "Z3": 25, "AA10": 26, "": -1}
	for ref, want := range tests {
		if got := columnIndex(ref); got != want {
			t.Errorf("columnIndex(%q) = %d, want %d", ref, got, want)
		}
	}
}
