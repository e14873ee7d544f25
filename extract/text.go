package extract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// plainText returns content converted to UTF-8.
func plainText(data []byte) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(data), "text/plain")
	if err != nil {
		return "", fmt.Errorf("unable to detect encoding: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("unable to decode text: %w", err)
	}
	return string(out), nil
}

// csvText joins fields with tabs, one record per line.
func csvText(data []byte) (string, error) {
	text, err := plainText(data)
	if err != nil {
		return "", err
	}
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var sb strings.Builder
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("unable to parse csv: %w", err)
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(rec, "\t"))
	}
	return sb.String(), nil
}

func jsonText(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return "", fmt.Errorf("unable to parse json: %w", err)
	}
	return buf.String(), nil
}

// yamlText re-emits every document of the stream as indented JSON.
func yamlText(data []byte) (string, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var parts []string
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("unable to parse yaml: %w", err)
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonValue(v)); err != nil {
			return "", fmt.Errorf("unable to convert yaml: %w", err)
		}
		parts = append(parts, strings.TrimSuffix(buf.String(), "\n"))
	}
	return strings.Join(parts, "\n"), nil
}

// jsonValue replaces maps with non-string keys which json cannot encode.
func jsonValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = jsonValue(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = jsonValue(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = jsonValue(e)
		}
		return t
	}
	return v
}
