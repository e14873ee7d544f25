// Package common keeps enums shared between configuration, conversion and
// extraction code, so none of them has to import another.
package common

//go:generate go tool go-enum --marshal --names --values

// OutputFmt is the requested output type.
// ENUM(docx, pdf)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtDocx:
		return ".docx"
	case OutputFmtPdf:
		return ".pdf"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Formats text could be extracted from.
// ENUM(txt, md, csv, json, yaml, xml, html, docx, pptx, xlsx, odt, odp, ods)
type InputFmt int

// IsArchive reports formats which are zip containers of XML parts.
func (f InputFmt) IsArchive() bool {
	switch f {
	case InputFmtDocx, InputFmtPptx, InputFmtXlsx, InputFmtOdt, InputFmtOdp, InputFmtOds:
		return true
	}
	return false
}

// Page size used by paginated outputs.
// ENUM(A4, Letter)
type PageSize int
