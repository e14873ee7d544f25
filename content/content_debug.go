package content

import (
	"path/filepath"
	"strings"

	"docconv/config"
)

// String returns style catalog and document tree for debugging.
func (c *Content) String() string {
	var sb strings.Builder
	sb.WriteString("Source: ")
	sb.WriteString(c.SrcName)
	sb.WriteString("\n\n")
	if c.Catalog != nil {
		sb.WriteString(c.Catalog.String())
		sb.WriteString("\n")
	}
	if c.Doc != nil {
		sb.WriteString(c.Doc.String())
	}
	return sb.String()
}

// Dump stores debug representation of converted content in the report.
func (c *Content) Dump(rpt *config.Report) {
	name := strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName))
	rpt.StoreData(name+"-model.txt", []byte(c.String()))
}
