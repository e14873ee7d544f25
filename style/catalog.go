// Package style keeps per conversion table of CSS rules and resolves
// effective style of individual elements using simplified cascade:
// tag < class < id < inline.
package style

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"docconv/css"
)

// Built-in tag styles, stylesheet rules are merged on top of them.
var tagDefaults = map[string]map[string]string{
	"h1":     {"font-size": "24pt", "font-weight": "bold"},
	"h2":     {"font-size": "20pt", "font-weight": "bold"},
	"h3":     {"font-size": "18pt", "font-weight": "bold"},
	"h4":     {"font-size": "16pt", "font-weight": "bold"},
	"h5":     {"font-size": "14pt", "font-weight": "bold"},
	"h6":     {"font-size": "12pt", "font-weight": "bold"},
	"strong": {"font-weight": "bold"},
	"b":      {"font-weight": "bold"},
	"em":     {"font-style": "italic"},
	"i":      {"font-style": "italic"},
	"u":      {"text-decoration": "underline"},
}

// Catalog holds all rules known for one conversion. It is never modified
// after NewCatalog returns and could be shared by concurrent readers.
type Catalog struct {
	rules    [3]map[string]map[string]string // indexed by css.SelectorKind
	warnings []string
}

// NewCatalog builds catalog from built-in defaults and stylesheets in order.
// Re-declared selectors are merged, later values win.
func NewCatalog(log *zap.Logger, sheets ...*css.Stylesheet) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{}
	for i := range c.rules {
		c.rules[i] = make(map[string]map[string]string)
	}
	for tag, props := range tagDefaults {
		c.rules[css.SelectorTag][tag] = maps.Clone(props)
	}

	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, r := range sheet.Rules {
			table := c.rules[r.Selector.Kind]
			if props, ok := table[r.Selector.Name]; ok {
				maps.Copy(props, r.Properties)
				continue
			}
			table[r.Selector.Name] = maps.Clone(r.Properties)
		}
		c.warnings = append(c.warnings, sheet.Warnings...)
	}

	log.Debug("Style catalog ready",
		zap.Int("tags", len(c.rules[css.SelectorTag])),
		zap.Int("classes", len(c.rules[css.SelectorClass])),
		zap.Int("ids", len(c.rules[css.SelectorID])),
		zap.Int("warnings", len(c.warnings)))
	return c
}

func (c *Catalog) lookup(kind css.SelectorKind, name string) map[string]string {
	return c.rules[kind][name]
}

// Tag returns copy of properties for tag rule or nil.
func (c *Catalog) Tag(name string) map[string]string {
	return maps.Clone(c.lookup(css.SelectorTag, strings.ToLower(name)))
}

// Class returns copy of properties for class rule or nil.
func (c *Catalog) Class(name string) map[string]string {
	return maps.Clone(c.lookup(css.SelectorClass, name))
}

// ID returns copy of properties for id rule or nil.
func (c *Catalog) ID(name string) map[string]string {
	return maps.Clone(c.lookup(css.SelectorID, name))
}

// Warnings returns messages about stylesheet parts which were ignored.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}

// String dumps catalog in deterministic order.
func (c *Catalog) String() string {
	var sb strings.Builder
	prefixes := [...]string{css.SelectorTag: "", css.SelectorClass: ".", css.SelectorID: "#"}
	for kind, table := range c.rules {
		for _, name := range slices.Sorted(maps.Keys(table)) {
			props := table[name]
			fmt.Fprintf(&sb, "%s%s {", prefixes[kind], name)
			for _, p := range slices.Sorted(maps.Keys(props)) {
				fmt.Fprintf(&sb, " %s: %s;", p, props[p])
			}
			sb.WriteString(" }\n")
		}
	}
	return sb.String()
}
