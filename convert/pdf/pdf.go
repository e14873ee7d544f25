// Package pdf renders document model with PDF core fonts.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"docconv/common"
	"docconv/config"
	"docconv/content"
	"docconv/misc"
	"docconv/model"
)

const (
	baseFontSize = 11.0
	ptToMM       = 25.4 / 72
	mmPerInch    = 25.4
	lineSpacing  = 1.25
	listIndent   = 6.35 // mm
	paraSpacing  = 2.0  // mm
)

// Generate writes PDF file replacing existing one.
func Generate(ctx context.Context, c *content.Content, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("Generating PDF", zap.String("output", outputPath))

	var buf bytes.Buffer
	if err := Write(ctx, c, &buf, cfg, log); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}

// Write renders document into w.
func Write(ctx context.Context, c *content.Content, w io.Writer, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := newRenderer(cfg, log)
	r.render(c.Doc)
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("unable to produce PDF: %w", err)
	}
	log.Debug("PDF rendered", zap.Int("pages", r.pdf.PageNo()), zap.Int("images", len(r.images)))
	return nil
}

type renderer struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	log    *zap.Logger
	margin float64

	numbers map[int]int             // list id -> last item number
	images  map[*model.Image]string // registered pictures
}

func newRenderer(cfg *config.DocumentConfig, log *zap.Logger) *renderer {
	size := "A4"
	if cfg.Page.Size == common.PageSizeLetter {
		size = "Letter"
	}
	pdf := gofpdf.New("P", "mm", size, "")
	pdf.SetMargins(cfg.Page.Margin, cfg.Page.Margin, cfg.Page.Margin)
	pdf.SetAutoPageBreak(true, cfg.Page.Margin)

	creator := cfg.Creator
	if creator == "" {
		creator = misc.GetAppName()
	}
	pdf.SetCreator(creator, true)
	pdf.SetFont("Helvetica", "", baseFontSize)

	return &renderer{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		log:     log,
		margin:  cfg.Page.Margin,
		numbers: make(map[int]int),
		images:  make(map[*model.Image]string),
	}
}

func (r *renderer) render(doc *model.Document) {
	if doc.Title != "" {
		r.pdf.SetTitle(doc.Title, true)
	}
	r.pdf.AddPage()

	for _, n := range doc.Nodes {
		switch v := n.(type) {
		case *model.Paragraph:
			r.paragraph(v)
		case *model.Table:
			r.table(v)
		case *model.Image:
			r.image(v, r.margin)
			r.pdf.Ln(paraSpacing)
		case model.PageBreak:
			r.pdf.AddPage()
		case model.LineBreak:
			r.pdf.Ln(lineHeight(baseFontSize))
		default:
			panic(fmt.Sprintf("unexpected document node %T", n))
		}
	}
}

func (r *renderer) contentWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w - 2*r.margin
}

func lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

// coreFont maps CSS font family to one of the PDF core fonts.
func coreFont(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"), strings.Contains(f, "consolas"):
		return "Courier"
	case strings.Contains(f, "sans"), strings.Contains(f, "arial"), strings.Contains(f, "helvetica"), strings.Contains(f, "verdana"):
		return "Helvetica"
	case strings.Contains(f, "times"), strings.Contains(f, "serif"), strings.Contains(f, "georgia"):
		return "Times"
	}
	return "Helvetica"
}

func fontStyle(run *model.Run) string {
	var sb strings.Builder
	if run.Bold {
		sb.WriteByte('B')
	}
	if run.Italic {
		sb.WriteByte('I')
	}
	if run.Underline {
		sb.WriteByte('U')
	}
	return sb.String()
}

func runSize(run *model.Run) float64 {
	if run.FontSize > 0 {
		return float64(run.FontSize)
	}
	return baseFontSize
}

func (r *renderer) setRunFormat(run *model.Run) {
	r.pdf.SetFont(coreFont(run.FontFamily), fontStyle(run), runSize(run))
	if run.Color != nil {
		r.pdf.SetTextColor(int(run.Color.R), int(run.Color.G), int(run.Color.B))
	} else {
		r.pdf.SetTextColor(0, 0, 0)
	}
	if run.Highlight != nil {
		r.pdf.SetFillColor(int(run.Highlight.R), int(run.Highlight.G), int(run.Highlight.B))
	}
}

func alignStr(a model.Alignment) string {
	switch a {
	case model.AlignCenter:
		return "C"
	case model.AlignRight:
		return "R"
	case model.AlignJustify:
		return "J"
	}
	return "L"
}

func (r *renderer) listPrefix(p *model.Paragraph) string {
	switch p.List {
	case model.ListBullet:
		return "• "
	case model.ListNumbered:
		r.numbers[p.ListID]++
		return strconv.Itoa(r.numbers[p.ListID]) + ". "
	}
	return ""
}

// uniform returns the run which formats whole paragraph when paragraph has
// only text and breaks sharing the same formatting.
func uniform(p *model.Paragraph) (*model.Run, bool) {
	var first *model.Run
	for i := range p.Runs {
		run := &p.Runs[i]
		switch {
		case run.Image != nil:
			return nil, false
		case run.Break:
			continue
		case first == nil:
			first = run
		case !first.SameFormat(*run):
			return nil, false
		}
	}
	return first, first != nil
}

func (r *renderer) paragraph(p *model.Paragraph) {
	indent := p.IndentLeft * mmPerInch
	if p.List != model.ListNone {
		indent += listIndent
	}
	left := r.margin + indent
	prefix := r.listPrefix(p)

	if p.IsEmpty() {
		r.pdf.Ln(lineHeight(baseFontSize))
		return
	}

	if run, ok := uniform(p); ok {
		r.setRunFormat(run)
		r.pdf.SetX(left)
		r.pdf.MultiCell(r.contentWidth()-indent, lineHeight(runSize(run)), r.tr(prefix+p.Text()), "", alignStr(p.Align), run.Highlight != nil)
		r.pdf.Ln(paraSpacing)
		return
	}

	// mixed formatting is written as flowing text, alignment is not supported
	r.pdf.SetLeftMargin(left)
	r.pdf.SetX(left)
	lh := lineHeight(baseFontSize)
	if prefix != "" {
		r.setRunFormat(&model.Run{})
		r.pdf.Write(lh, r.tr(prefix))
	}
	for i := range p.Runs {
		run := &p.Runs[i]
		switch {
		case run.Break:
			r.pdf.Ln(lh)
		case run.Image != nil:
			if r.pdf.GetX() > left {
				r.pdf.Ln(lh)
			}
			r.image(run.Image, left)
		default:
			r.setRunFormat(run)
			lh = lineHeight(runSize(run))
			r.pdf.Write(lh, r.tr(run.Text))
		}
	}
	r.pdf.SetLeftMargin(r.margin)
	r.pdf.Ln(lh + paraSpacing)
}

func imageType(mime string) string {
	switch mime {
	case "image/jpeg":
		return "JPG"
	case "image/gif":
		return "GIF"
	}
	return "PNG"
}

// image places picture at the current vertical position. Pictures which
// could not be embedded are replaced by a marker text.
func (r *renderer) image(img *model.Image, left float64) {
	name, ok := r.images[img]
	if !ok {
		name = "image" + strconv.Itoa(len(r.images)+1)
		r.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType(img.MimeType)}, bytes.NewReader(img.Data))
		if err := r.pdf.Error(); err != nil {
			r.log.Warn("Unable to embed image, skipping", zap.String("source", img.Source), zap.Error(err))
			r.pdf.ClearError()
			r.setRunFormat(&model.Run{})
			r.pdf.SetX(left)
			r.pdf.Write(lineHeight(baseFontSize), "[image]")
			return
		}
		r.images[img] = name
	}

	w := min(img.Width*mmPerInch, r.contentWidth()-(left-r.margin))
	h := w
	if img.Width > 0 {
		h = img.Height() * w / img.Width
	}
	r.pdf.SetX(left)
	r.pdf.ImageOptions(name, -1, 0, w, h, true, gofpdf.ImageOptions{ImageType: imageType(img.MimeType)}, 0, "")
}

func (r *renderer) table(t *model.Table) {
	cols := t.Cols()
	if cols == 0 {
		return
	}
	colW := r.contentWidth() / float64(cols)
	lh := lineHeight(baseFontSize)
	_, pageH := r.pdf.GetPageSize()

	for _, row := range t.Rows {
		texts := make([]string, len(row))
		height := lh
		for i, cell := range row {
			texts[i] = r.tr(cell.Text())
			r.setRunFormat(cellFormat(cell))
			lines := r.pdf.SplitLines([]byte(texts[i]), colW-2)
			height = max(height, float64(len(lines))*lh)
		}
		if r.pdf.GetY()+height > pageH-r.margin {
			r.pdf.AddPage()
		}
		y := r.pdf.GetY()
		for i, cell := range row {
			x := r.margin + float64(i)*colW
			r.pdf.Rect(x, y, colW, height, "D")
			r.setRunFormat(cellFormat(cell))
			r.pdf.SetXY(x+1, y)
			r.pdf.MultiCell(colW-2, lh, texts[i], "", alignStr(cellAlign(cell)), false)
		}
		r.pdf.SetXY(r.margin, y+height)
	}
	r.pdf.Ln(paraSpacing)
}

// cellFormat uses formatting of the first text run in the cell.
func cellFormat(c model.Cell) *model.Run {
	for _, p := range c.Paragraphs {
		for i := range p.Runs {
			if run := &p.Runs[i]; !run.Break && run.Image == nil {
				return run
			}
		}
	}
	return &model.Run{}
}

func cellAlign(c model.Cell) model.Alignment {
	if len(c.Paragraphs) == 0 {
		return model.AlignUnset
	}
	return c.Paragraphs[0].Align
}
