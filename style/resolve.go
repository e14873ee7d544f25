package style

import (
	"maps"
	"strings"

	"docconv/css"
	"docconv/dom"
)

// Effective is the resolved property set of one element.
type Effective map[string]string

// Get returns property value or empty string.
func (e Effective) Get(name string) string {
	return e[name]
}

// Equal compares two resolved styles.
func (e Effective) Equal(o Effective) bool {
	return maps.Equal(e, o)
}

// Resolve computes element style applying layers in fixed order: tag rule,
// class rules in class attribute order, id rule and finally inline style
// attribute. Every layer overwrites same named properties of previous ones.
// Catalog is not modified, calling Resolve repeatedly gives equal results.
func Resolve(el dom.Node, cat *Catalog, p *css.Parser) Effective {
	eff := make(Effective)

	if tag := el.Tag(); tag != "" {
		maps.Copy(eff, cat.lookup(css.SelectorTag, strings.ToLower(tag)))
	}
	for _, class := range dom.Classes(el) {
		maps.Copy(eff, cat.lookup(css.SelectorClass, class))
	}
	if id, ok := el.Attr("id"); ok && id != "" {
		maps.Copy(eff, cat.lookup(css.SelectorID, id))
	}
	if inline, ok := el.Attr("style"); ok && strings.TrimSpace(inline) != "" {
		maps.Copy(eff, p.ParseDeclarations(inline))
	}
	return eff
}
