package content

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"docconv/css"
	"docconv/dom"
	"docconv/model"
	"docconv/style"
)

// Options control single document construction.
type Options struct {
	// ImageWidth is display width of every picture in inches.
	ImageWidth float64
	// BaseDir is used to resolve relative picture paths.
	BaseDir string
	// AllowLocal enables embedding of pictures from local files.
	AllowLocal bool
	// MaxPixels limits picture dimensions, larger pictures are downscaled.
	MaxPixels int
	// ExtraStyle is parsed after all document stylesheets.
	ExtraStyle []byte
}

// Builder converts DOM tree into document model. Builder is not safe for
// concurrent use, but could be reused for several documents sequentially.
type Builder struct {
	opts   Options
	log    *zap.Logger
	parser *css.Parser

	cat   *style.Catalog
	doc   *model.Document
	lists int
}

func NewBuilder(opts Options, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = 4
	}
	log = log.Named("builder")
	return &Builder{
		opts:   opts,
		log:    log,
		parser: css.NewParser(log),
	}
}

// flow is the state of paragraph construction. Outside of block element
// (inBlock is false) every text node and inline element gets a paragraph of
// its own.
type flow struct {
	p *model.Paragraph
	// properties for paragraphs opened by this flow
	proto model.Paragraph
	// formatting of direct text
	format style.RunFormat
	// inside block element paragraph is considered open even before first
	// run is added
	inBlock bool
	pre     bool
}

func (f *flow) paragraph() *model.Paragraph {
	if f.p == nil {
		p := f.proto
		p.Runs = nil
		f.p = &p
	}
	return f.p
}

// Build performs one conversion. Document is either complete or not
// returned at all.
func (b *Builder) Build(root dom.Node) (doc *model.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Debug("Document construction panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			doc, err = nil, fmt.Errorf("unable to build document: %v", r)
		}
	}()

	b.cat = style.NewCatalog(b.log, b.stylesheets(root)...)
	if warns := b.cat.Warnings(); len(warns) > 0 {
		b.log.Warn("Some CSS rules ignored", zap.Strings("warnings", warns))
	}
	b.doc = model.New()
	b.doc.Title = dom.Title(root)
	b.lists = 0

	f := &flow{}
	b.walkChildren(dom.Body(root), f)
	b.flush(f)

	b.log.Debug("Document built", zap.Int("nodes", len(b.doc.Nodes)), zap.Int("lists", b.lists))
	return b.doc, nil
}

// Catalog returns style catalog of the last built document.
func (b *Builder) Catalog() *style.Catalog {
	return b.cat
}

func (b *Builder) stylesheets(root dom.Node) []*css.Stylesheet {
	var sheets []*css.Stylesheet
	for i, text := range dom.Stylesheets(root) {
		sheets = append(sheets, b.parser.Parse([]byte(text), fmt.Sprintf("style#%d", i+1)))
	}
	if len(b.opts.ExtraStyle) > 0 {
		sheets = append(sheets, b.parser.Parse(b.opts.ExtraStyle, "extra"))
	}
	return sheets
}

func (b *Builder) resolve(el dom.Node) style.Effective {
	return style.Resolve(el, b.cat, b.parser)
}

// flush closes open paragraph adding it to the document when it has
// content.
func (b *Builder) flush(f *flow) {
	if f.p == nil {
		return
	}
	if f.pre {
		trimBreaks(f.p)
	} else {
		trimParagraph(f.p)
	}
	if !f.p.IsEmpty() {
		b.doc.Append(f.p)
	}
	f.p = nil
}

func (b *Builder) walkChildren(n dom.Node, f *flow) {
	for _, c := range n.Children() {
		b.walk(c, f)
	}
}

func (b *Builder) walk(n dom.Node, f *flow) {
	switch k := Classify(n); k {
	case KindText:
		b.text(n.Text(), f)
	case KindBlock:
		b.block(n, f)
	case KindInline:
		b.inline(n, f)
	case KindBreak:
		b.lineBreak(f)
	case KindImage:
		b.image(n, f)
	case KindTable:
		b.flush(f)
		if t := b.table(n); t != nil {
			b.doc.Append(t)
		}
	case KindList:
		b.flush(f)
		b.list(n)
	case KindPageBreak:
		b.flush(f)
		b.doc.Append(model.PageBreak{})
	case KindPassThrough:
		b.walkChildren(n, f)
	case KindIgnored:
	default:
		panic(fmt.Sprintf("unexpected element kind %s for <%s>", k, n.Tag()))
	}
}

func (b *Builder) text(s string, f *flow) {
	if f.pre {
		if s != "" {
			appendVerbatim(f.paragraph(), s, f.format)
		}
		return
	}
	if !f.inBlock && isBlank(s) {
		return
	}
	appendText(f.paragraph(), s, f.format)
	if !f.inBlock {
		b.flush(f)
	}
}

func (b *Builder) block(el dom.Node, parent *flow) {
	b.flush(parent)

	tag := el.Tag()
	eff := b.resolve(el)
	f := &flow{
		format:  style.Format(eff),
		inBlock: true,
		pre:     parent.pre || tag == "pre",
	}
	f.proto.IndentLeft = parent.proto.IndentLeft
	if a, ok := style.Alignment(eff); ok {
		f.proto.Align = a
	}

	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		f.format.Bold = true
		if f.format.FontSize == 0 {
			f.format.FontSize = headingSizes[tag]
		}
	case "blockquote":
		f.format.Italic = true
		f.proto.IndentLeft += quoteIndent
	case "pre":
		f.format.FontFamily = preFontFamily
		f.format.FontSize = preFontSize
	}

	before := len(b.doc.Nodes)
	b.walkChildren(el, f)
	b.flush(f)
	if len(b.doc.Nodes) == before {
		p := f.proto
		b.doc.Append(&p)
	}
}

func (b *Builder) inline(el dom.Node, f *flow) {
	text := el.Text()
	keep := text != "" && (f.pre || f.inBlock || !isBlank(text))
	if keep {
		eff := b.resolve(el)
		p := f.paragraph()
		if a, ok := style.Alignment(eff); ok {
			p.Align = a
		}
		if f.pre {
			appendVerbatim(p, text, style.Format(eff))
		} else {
			appendText(p, text, style.Format(eff))
		}
		if !f.inBlock {
			b.flush(f)
		}
	}
	// pictures wrapped in links and spans
	for _, img := range dom.FindAll(el, "img", nil) {
		b.image(img, f)
	}
}

func (b *Builder) lineBreak(f *flow) {
	if f.p == nil && !f.inBlock {
		p := f.proto
		b.doc.Append(&p)
		return
	}
	f.paragraph().AddRun(model.Run{Break: true})
}
