package dom

import "strings"

// IsText reports text nodes.
func IsText(n Node) bool {
	return n.Tag() == ""
}

// Classes splits class attribute into tokens in attribute order.
func Classes(n Node) []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// HasClass checks for exact class token.
func HasClass(n Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns first element with given tag in depth first order, including
// n itself.
func Find(n Node, tag string) Node {
	if n.Tag() == tag {
		return n
	}
	for _, c := range n.Children() {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all elements with given tag in document order. When
// stop is not nil elements for which it returns true are not descended into.
func FindAll(n Node, tag string, stop func(Node) bool) []Node {
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		for _, c := range n.Children() {
			if c.Tag() == tag {
				out = append(out, c)
			}
			if stop != nil && stop(c) {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// ChildElements returns direct children with given tag.
func ChildElements(n Node, tag string) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Tag() == tag {
			out = append(out, c)
		}
	}
	return out
}

// Body returns body element or n when document has none.
func Body(n Node) Node {
	if body := Find(n, "body"); body != nil {
		return body
	}
	return n
}

// Title returns trimmed text of the title element.
func Title(n Node) string {
	if t := Find(n, "title"); t != nil {
		return strings.Join(strings.Fields(t.Text()), " ")
	}
	return ""
}

// Stylesheets collects content of all style elements in document order.
func Stylesheets(n Node) []string {
	var out []string
	for _, s := range FindAll(n, "style", nil) {
		if text := s.Text(); strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}
	return out
}
