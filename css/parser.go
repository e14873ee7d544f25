package css

import (
	"bytes"
	"io"
	"maps"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets and inline declaration lists.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Grouped selectors produce one rule
// per selector, selectors which are not a single tag, class or id are skipped
// with a warning. At-rules are ignored together with their blocks.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))
			skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			props := p.parseDeclarations(parser, false)
			for _, raw := range selectors {
				sel, ok := p.parseSelector(raw, sheet)
				if !ok {
					continue
				}
				// every rule owns its map, catalog merges them later
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Properties: maps.Clone(props)})
			}
		}
	}
}

// ParseDeclarations parses the content of a style attribute, e.g.
// "color: red; font-size: 12pt". Later declarations overwrite earlier ones.
func (p *Parser) ParseDeclarations(text string) map[string]string {
	parser := css.NewParser(parse.NewInputString(text), true)
	return p.parseDeclarations(parser, true)
}

func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		}
	}
}

// splitSelectors builds selector text from tokens and splits it by comma for
// grouped selectors.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations reads property declarations until the end of the current
// ruleset, or until the end of input for inline lists.
func (p *Parser) parseDeclarations(parser *css.Parser, inline bool) map[string]string {
	props := make(map[string]string)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				p.log.Debug("CSS declarations parse error", zap.Error(err))
			}
			return props

		case css.EndRulesetGrammar:
			if !inline {
				return props
			}

		case css.DeclarationGrammar:
			if value := joinValue(parser.Values()); value != "" {
				props[strings.ToLower(string(data))] = value
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) are not supported
			continue
		}
	}
}

// joinValue converts value tokens into a raw string, whitespace runs become a
// single space and trailing !important is dropped.
func joinValue(tokens []css.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if t.TokenType == css.DelimToken && string(t.Data) == "!" &&
			i+1 < len(tokens) && strings.EqualFold(string(tokens[i+1].Data), "important") {
			break
		}
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// parseSelector recognizes tag, .class and #id selectors. Anything else
// (combinators, compound selectors, attributes, pseudo-classes) is reported
// and skipped.
func (p *Parser) parseSelector(raw string, sheet *Stylesheet) (Selector, bool) {
	sel := Selector{Raw: raw}

	var unsupported string
	switch {
	case strings.ContainsAny(raw, "+~> \t\n"):
		unsupported = "unsupported combinator selector: "
	case strings.Contains(raw, "["):
		unsupported = "unsupported attribute selector: "
	case strings.Contains(raw, ":"):
		unsupported = "unsupported pseudo selector: "
	}
	if unsupported == "" {
		switch raw[0] {
		case '.':
			sel.Kind, sel.Name = SelectorClass, raw[1:]
		case '#':
			sel.Kind, sel.Name = SelectorID, raw[1:]
		default:
			sel.Kind, sel.Name = SelectorTag, strings.ToLower(raw)
		}
		if !isIdent(sel.Name) {
			unsupported = "unsupported compound selector: "
		}
	}
	if unsupported != "" {
		sheet.Warnings = append(sheet.Warnings, unsupported+raw)
		p.log.Debug("Skipping selector", zap.String("selector", raw))
		return sel, false
	}
	return sel, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r == '-' || r == '_':
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r > 127:
		default:
			return false
		}
	}
	return true
}
