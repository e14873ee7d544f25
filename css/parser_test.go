package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"docconv/css"
)

func TestParser_SimpleSelectors(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`
/* heading colors */
p { color: red; }
.note { font-style: italic }
#intro { font-size: 12pt; }
`), "test")

	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(sheet.Rules))
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}

	tests := []struct {
		kind  css.SelectorKind
		name  string
		prop  string
		value string
	}{
		{css.SelectorTag, "p", "color", "red"},
		{css.SelectorClass, "note", "font-style", "italic"},
		{css.SelectorID, "intro", "font-size", "12pt"},
	}
	for i, tt := range tests {
		rule := sheet.Rules[i]
		if rule.Selector.Kind != tt.kind || rule.Selector.Name != tt.name {
			t.Errorf("rule %d: selector = %s %q, want %s %q", i, rule.Selector.Kind, rule.Selector.Name, tt.kind, tt.name)
		}
		if got := rule.Properties[tt.prop]; got != tt.value {
			t.Errorf("rule %d: %s = %q, want %q", i, tt.prop, got, tt.value)
		}
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`h1, .title, #main { font-weight: bold; color: #00f }`))
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(sheet.Rules))
	}

	// properties must not be shared between rules
	sheet.Rules[0].Properties["color"] = "green"
	if sheet.Rules[1].Properties["color"] != "#00f" {
		t.Errorf("rules share property map: %q", sheet.Rules[1].Properties["color"])
	}
	for _, r := range sheet.Rules {
		if r.Properties["font-weight"] != "bold" {
			t.Errorf("%s: font-weight = %q, want bold", r.Selector.Raw, r.Properties["font-weight"])
		}
	}
}

func TestParser_UnsupportedSelectors(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	for _, sel := range []string{"div p", "ul > li", "p.note", "a:hover", "input[type=text]"} {
		t.Run(sel, func(t *testing.T) {
			sheet := p.Parse([]byte(sel + ` { color: red }`))
			if len(sheet.Rules) != 0 {
				t.Errorf("expected selector to be skipped, got %d rules", len(sheet.Rules))
			}
			if len(sheet.Warnings) != 1 {
				t.Errorf("expected one warning, got %v", sheet.Warnings)
			}
		})
	}
}

func TestParser_SkipsAtRules(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`
@import url("other.css");
@media print { p { color: red } }
span { color: blue }
`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d: %s", len(sheet.Rules), sheet)
	}
	if sheet.Rules[0].Selector.Name != "span" {
		t.Errorf("selector = %q, want span", sheet.Rules[0].Selector.Name)
	}
}

func TestParser_ValueNormalization(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`P { COLOR: rgb(0, 128, 0) !important; Font-Family: "Times New Roman", serif }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if rule.Selector.Name != "p" {
		t.Errorf("tag name = %q, want p", rule.Selector.Name)
	}
	if got := rule.Properties["color"]; got != "rgb(0, 128, 0)" {
		t.Errorf("color = %q", got)
	}
	if got := css.FirstFontFamily(rule.Properties["font-family"]); got != "Times New Roman" {
		t.Errorf("font family = %q", got)
	}
}

func TestParser_ParseDeclarations(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"single", "color: red", map[string]string{"color": "red"}},
		{"multiple", "color: red; font-size: 12pt;", map[string]string{"color": "red", "font-size": "12pt"}},
		{"later wins", "color: red; color: blue", map[string]string{"color": "blue"}},
		{"case", "TEXT-ALIGN: center", map[string]string{"text-align": "center"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseDeclarations(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestStylesheet_String(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`.b { font-weight: bold; color: red }`))
	out := sheet.String()
	if !strings.Contains(out, ".b {") || !strings.Contains(out, "  color: red;\n  font-weight: bold;") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if len(sheet.RulesBySelector(".b")) != 1 {
		t.Error("RulesBySelector(.b) should find the rule")
	}
}
