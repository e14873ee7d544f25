package css

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// SelectorKind tells which element property a simple selector matches.
type SelectorKind int

const (
	SelectorTag   SelectorKind = iota // p, h1, span
	SelectorClass                     // .note
	SelectorID                        // #intro
)

func (k SelectorKind) String() string {
	switch k {
	case SelectorClass:
		return "class"
	case SelectorID:
		return "id"
	default:
		return "tag"
	}
}

// Selector is a single simple selector: tag name, class or id.
type Selector struct {
	Raw  string       // selector as written
	Kind SelectorKind // What Name refers to
	Name string       // Tag name (lower case), class or id without prefix
}

// Rule is a simple selector with its declarations. Values are kept as raw
// trimmed strings, interpretation happens when style is applied.
type Rule struct {
	Selector   Selector
	Properties map[string]string
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // Supported rules in source order
	Warnings []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector.Raw == selector {
			matches = append(matches, r)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		if i > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}
	for _, name := range slices.Sorted(maps.Keys(rule.Properties)) {
		n, err = fmt.Fprintf(w, "  %s: %s;\n", name, rule.Properties[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = io.WriteString(w, "}\n")
	total += n
	return total, err
}
