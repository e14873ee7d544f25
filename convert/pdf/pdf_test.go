package pdf

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"docconv/common"
	"docconv/config"
	"docconv/content"
	"docconv/model"
)

func testConfig() *config.DocumentConfig {
	return &config.DocumentConfig{Page: config.PageConfig{Size: common.PageSizeA4, Margin: 20}}
}

func testDocument(t *testing.T) *model.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 8))); err != nil {
		t.Fatal(err)
	}
	img := &model.Image{Data: buf.Bytes(), MimeType: "image/png", Width: 4, PixelWidth: 16, PixelHeight: 8}

	doc := model.New()
	doc.Title = "Отчёт"
	doc.Append(&model.Paragraph{Align: model.AlignCenter, Runs: []model.Run{{Text: "Heading", Bold: true, FontSize: 24}}})
	doc.Append(&model.Paragraph{Runs: []model.Run{
		{Text: "plain "},
		{Text: "marked", Highlight: &model.RGB{R: 255, G: 255}, Color: &model.RGB{B: 255}},
		{Break: true},
		{Text: "code", FontFamily: "Courier New"},
		{Image: img},
	}})
	doc.Append(&model.Paragraph{List: model.ListBullet, ListID: 1, Runs: []model.Run{{Text: "bullet"}}})
	doc.Append(&model.Paragraph{List: model.ListNumbered, ListID: 2, Runs: []model.Run{{Text: "first"}}})
	doc.Append(&model.Paragraph{})
	doc.Append(img)
	doc.Append(model.PageBreak{})

	tbl := model.NewTable(2, 3)
	tbl.Rows[0][0] = model.Cell{Paragraphs: []*model.Paragraph{{Runs: []model.Run{{Text: "head", Bold: true}}}}}
	tbl.Rows[1][2] = model.Cell{Paragraphs: []*model.Paragraph{{Align: model.AlignRight, Runs: []model.Run{{Text: "a rather long cell text which wraps over several lines"}}}}}
	doc.Append(tbl)
	doc.Append(model.LineBreak{})
	return doc
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	c := &content.Content{SrcName: "x.html", Doc: testDocument(t)}
	if err := Write(context.Background(), c, &buf, testConfig(), zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF document")
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Subtype /Image")) {
		t.Error("image is not embedded")
	}
}

func TestRender_Pages(t *testing.T) {
	r := newRenderer(testConfig(), zaptest.NewLogger(t))
	r.render(testDocument(t))
	if err := r.pdf.Error(); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if n := r.pdf.PageNo(); n != 2 {
		t.Errorf("got %d pages, want 2", n)
	}
	if len(r.images) != 1 {
		t.Errorf("same picture must be registered once, got %d", len(r.images))
	}
}

func TestRender_BrokenImage(t *testing.T) {
	doc := model.New()
	doc.Append(&model.Image{Data: []byte("not a picture"), MimeType: "image/png", Width: 2})
	doc.Append(&model.Paragraph{Runs: []model.Run{{Text: "after"}}})

	var buf bytes.Buffer
	err := Write(context.Background(), &content.Content{Doc: doc}, &buf, testConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("broken picture must not fail rendering: %v", err)
	}
}

func TestListNumbering(t *testing.T) {
	r := newRenderer(testConfig(), zaptest.NewLogger(t))
	items := []*model.Paragraph{
		{List: model.ListNumbered, ListID: 1},
		{List: model.ListNumbered, ListID: 1},
		{List: model.ListNumbered, ListID: 2},
		{List: model.ListBullet, ListID: 3},
	}
	want := []string{"1. ", "2. ", "1. ", "• "}
	for i, p := range items {
		if got := r.listPrefix(p); got != want[i] {
			t.Errorf("item %d prefix = %q, want %q", i, got, want[i])
		}
	}
}

func TestCoreFont(t *testing.T) {
	tests := map[string]string{
		"":                "Helvetica",
		"Courier New":     "Courier",
		"monospace":       "Courier",
		"Times New Roman": "Times",
		"serif":           "Times",
		"sans-serif":      "Helvetica",
		"Arial":           "Helvetica",
		"Comic Sans MS":   "Helvetica",
	}
	for family, want := range tests {
		if got := coreFont(family); got != want {
			t.Errorf("coreFont(%q) = %q, want %q", family, got, want)
		}
	}
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	cfg := testConfig()
	cfg.Page.Size = common.PageSizeLetter
	c := &content.Content{SrcName: "x.html", Doc: testDocument(t)}
	if err := Generate(context.Background(), c, out, cfg, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF document")
	}
}
