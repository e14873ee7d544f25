package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"docconv/common"
	"docconv/config"
	"docconv/content"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	SourceFile string
	// Source directory relative to processed one, "." for top level.
	SourceDir string
	Format    string
	Date      string
}

func expandTemplate(c *content.Content, src string, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		SourceDir:  filepath.ToSlash(filepath.Dir(src)),
		Format:     format.String(),
		Date:       time.Now().Format("2006-01-02"),
	}
	if c != nil && c.Doc != nil {
		values.Title = c.Doc.Title
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
