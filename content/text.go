package content

import (
	"strings"

	"docconv/model"
	"docconv/style"
)

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// collapseSpace replaces every run of HTML white space with single space.
// Leading and trailing white space is kept as single space so adjacent runs
// stay separated.
func collapseSpace(s string) string {
	fields := strings.FieldsFunc(s, isHTMLSpace)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	var sb strings.Builder
	sb.Grow(len(s))
	if isHTMLSpace(rune(s[0])) {
		sb.WriteByte(' ')
	}
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f)
	}
	if isHTMLSpace(rune(s[len(s)-1])) {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isHTMLSpace) == ""
}

// endsWithSpace reports whether following text should drop its leading
// space: paragraph is empty, last run is a break or ends with space.
func endsWithSpace(p *model.Paragraph) bool {
	if p.IsEmpty() {
		return true
	}
	last := p.Runs[len(p.Runs)-1]
	if last.Break {
		return true
	}
	if last.Image != nil {
		return false
	}
	return last.Text == "" || strings.HasSuffix(last.Text, " ")
}

// appendText adds collapsed text to the paragraph as new run.
func appendText(p *model.Paragraph, text string, f style.RunFormat) {
	text = collapseSpace(text)
	if endsWithSpace(p) {
		text = strings.TrimLeft(text, " ")
	}
	if text == "" {
		return
	}
	p.AddRun(f.Run(text))
}

// appendVerbatim adds preformatted text, new lines become break runs.
func appendVerbatim(p *model.Paragraph, text string, f style.RunFormat) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.AddRun(model.Run{Break: true})
		}
		if line != "" {
			p.AddRun(f.Run(line))
		}
	}
}

// trimParagraph removes trailing white space of the last text run dropping
// runs which become empty.
func trimParagraph(p *model.Paragraph) {
	for len(p.Runs) > 0 {
		last := &p.Runs[len(p.Runs)-1]
		if last.Break || last.Image != nil {
			return
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			return
		}
		p.Runs = p.Runs[:len(p.Runs)-1]
	}
}

// trimBreaks drops trailing line breaks of preformatted paragraph.
func trimBreaks(p *model.Paragraph) {
	for len(p.Runs) > 0 && p.Runs[len(p.Runs)-1].Break {
		p.Runs = p.Runs[:len(p.Runs)-1]
	}
}
