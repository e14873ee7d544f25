// Package dom defines the tree abstraction conversion works on and provides
// an implementation backed by golang.org/x/net/html.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// Node is a single element or text node.
type Node interface {
	// Tag returns lower case element name or empty string for text nodes.
	Tag() string
	// Attr looks up attribute value by name.
	Attr(name string) (string, bool)
	// Children returns element and text children in document order.
	Children() []Node
	// Text returns concatenation of all descendant text.
	Text() string
}

type htmlNode struct {
	n *html.Node
}

// Wrap returns Node for parsed html tree. Document node is replaced by its
// root element.
func Wrap(n *html.Node) Node {
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				return htmlNode{c}
			}
		}
	}
	return htmlNode{n}
}

// Parse reads HTML document detecting its encoding from BOM, meta tags or
// contentType, which may be empty.
func Parse(r io.Reader, contentType string) (Node, error) {
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, err
	}
	return parse(cr)
}

// ParseEncoded reads HTML document in known encoding.
func ParseEncoded(r io.Reader, enc encoding.Encoding) (Node, error) {
	return parse(enc.NewDecoder().Reader(r))
}

// ParseString is a convenience wrapper for UTF-8 text.
func ParseString(s string) (Node, error) {
	return parse(strings.NewReader(s))
}

func parse(r io.Reader) (Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return Wrap(doc), nil
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode, html.TextNode:
			out = append(out, htmlNode{c})
		}
	}
	return out
}

func (h htmlNode) Text() string {
	if h.n.Type == html.TextNode {
		return h.n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				sb.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(h.n)
	return sb.String()
}
