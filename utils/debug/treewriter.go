// Package debug renders indented trees stored in debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// Attr is a single node property, empty attributes are not printed.
type Attr struct {
	Key, Value string
	set        bool
}

// KV returns attribute printed as key=value when value is not empty.
func KV(key, value string) Attr {
	return Attr{Key: key, Value: value, set: value != ""}
}

// Flag returns attribute printed as bare key when on.
func Flag(key string, on bool) Attr {
	return Attr{Key: key, set: on}
}

func (a Attr) String() string {
	if a.Value == "" {
		return a.Key
	}
	return a.Key + "=" + a.Value
}

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Label returns label followed by attributes which are set.
func Label(label string, attrs ...Attr) string {
	var sb strings.Builder
	sb.WriteString(label)
	for _, a := range attrs {
		if a.set {
			sb.WriteByte(' ')
			sb.WriteString(a.String())
		}
	}
	return sb.String()
}

func (tw TreeWriter) Node(depth int, label string, attrs ...Attr) {
	tw.indent(depth)
	tw.w.WriteString(Label(label, attrs...))
	tw.w.WriteByte('\n')
}

// TextBlock writes label and quoted text, so whitespace is visible.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
