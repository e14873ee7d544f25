package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"docconv/dom"
)

// xmlText returns every non-blank text node on its own line.
func xmlText(data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", fmt.Errorf("unable to parse xml: %w", err)
	}
	var lines []string
	collectText(&doc.Element, &lines)
	return strings.Join(lines, "\n"), nil
}

func collectText(e *etree.Element, lines *[]string) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if s := strings.TrimSpace(t.Data); s != "" {
				*lines = append(*lines, s)
			}
		case *etree.Element:
			collectText(t, lines)
		}
	}
}

// elements which start a new line in extracted html text
var htmlBlocks = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
	"section": true, "article": true, "header": true, "footer": true,
}

var htmlSkipped = map[string]bool{
	"head": true, "style": true, "script": true, "noscript": true, "template": true,
}

func htmlText(data []byte) (string, error) {
	root, err := dom.Parse(bytes.NewReader(data), "text/html")
	if err != nil {
		return "", fmt.Errorf("unable to parse html: %w", err)
	}

	var (
		lines []string
		cur   strings.Builder
	)
	newLine := func() {
		if s := strings.Join(strings.Fields(cur.String()), " "); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		tag := n.Tag()
		switch {
		case dom.IsText(n):
			cur.WriteString(n.Text())
			return
		case htmlSkipped[tag]:
			return
		case tag == "td" || tag == "th":
			cur.WriteByte(' ')
		}
		if htmlBlocks[tag] {
			newLine()
		}
		for _, c := range n.Children() {
			walk(c)
		}
		if htmlBlocks[tag] {
			newLine()
		}
	}
	walk(dom.Body(root))
	newLine()
	return strings.Join(lines, "\n"), nil
}
