package content

import (
	"fmt"

	"docconv/dom"
)

// Kind is the role element plays during document construction.
type Kind int

const (
	KindPassThrough Kind = iota
	KindText
	KindBlock
	KindInline
	KindTable
	KindList
	KindBreak
	KindImage
	KindPageBreak
	KindIgnored
)

func (k Kind) String() string {
	switch k {
	case KindPassThrough:
		return "pass-through"
	case KindText:
		return "text"
	case KindBlock:
		return "block"
	case KindInline:
		return "inline"
	case KindTable:
		return "table"
	case KindList:
		return "list"
	case KindBreak:
		return "break"
	case KindImage:
		return "image"
	case KindPageBreak:
		return "page-break"
	case KindIgnored:
		return "ignored"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var tagKinds = map[string]Kind{
	"p":          KindBlock,
	"div":        KindBlock,
	"h1":         KindBlock,
	"h2":         KindBlock,
	"h3":         KindBlock,
	"h4":         KindBlock,
	"h5":         KindBlock,
	"h6":         KindBlock,
	"blockquote": KindBlock,
	"pre":        KindBlock,
	"span":       KindInline,
	"strong":     KindInline,
	"b":          KindInline,
	"em":         KindInline,
	"i":          KindInline,
	"u":          KindInline,
	"a":          KindInline,
	"table":      KindTable,
	"ul":         KindList,
	"ol":         KindList,
	"br":         KindBreak,
	"img":        KindImage,
	"head":       KindIgnored,
	"style":      KindIgnored,
	"script":     KindIgnored,
	"noscript":   KindIgnored,
	"template":   KindIgnored,
	"title":      KindIgnored,
	"meta":       KindIgnored,
	"link":       KindIgnored,
}

// pageBreakClass marks div elements which force new page.
const pageBreakClass = "page-break"

// Classify returns kind of the node. Unknown elements pass their children
// through to the surrounding context.
func Classify(n dom.Node) Kind {
	tag := n.Tag()
	if tag == "" {
		return KindText
	}
	if tag == "div" && dom.HasClass(n, pageBreakClass) {
		return KindPageBreak
	}
	if k, ok := tagKinds[tag]; ok {
		return k
	}
	return KindPassThrough
}

// headingSizes are used when heading has no usable font size.
var headingSizes = map[string]int{
	"h1": 18,
	"h2": 16,
	"h3": 14,
	"h4": 12,
	"h5": 11,
	"h6": 10,
}

const (
	preFontFamily      = "Courier New"
	preFontSize        = 10
	quoteIndent        = 0.5
	imagePlaceholder   = "Imagem"
	externalImageLabel = "Imagem externa"
)
