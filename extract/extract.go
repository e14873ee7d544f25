// Package extract pulls plain text out of documents of various formats.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"docconv/common"
)

// ErrUnsupportedFormat is returned for inputs no extractor exists for.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Result of text extraction.
type Result struct {
	Format common.InputFmt
	Text   string
	// Size of the input in bytes.
	Size int
}

type extractor func(data []byte) (string, error)

var extractors = map[common.InputFmt]extractor{
	common.InputFmtTxt:  plainText,
	common.InputFmtMd:   plainText,
	common.InputFmtCsv:  csvText,
	common.InputFmtJson: jsonText,
	common.InputFmtYaml: yamlText,
	common.InputFmtXml:  xmlText,
	common.InputFmtHtml: htmlText,
	common.InputFmtDocx: docxText,
	common.InputFmtPptx: pptxText,
	common.InputFmtXlsx: xlsxText,
	common.InputFmtOdt:  odfText,
	common.InputFmtOdp:  odfText,
	common.InputFmtOds:  odfText,
}

var extensions = map[string]common.InputFmt{
	".txt":      common.InputFmtTxt,
	".text":     common.InputFmtTxt,
	".log":      common.InputFmtTxt,
	".md":       common.InputFmtMd,
	".markdown": common.InputFmtMd,
	".csv":      common.InputFmtCsv,
	".json":     common.InputFmtJson,
	".yaml":     common.InputFmtYaml,
	".yml":      common.InputFmtYaml,
	".xml":      common.InputFmtXml,
	".html":     common.InputFmtHtml,
	".htm":      common.InputFmtHtml,
	".xhtml":    common.InputFmtHtml,
	".docx":     common.InputFmtDocx,
	".pptx":     common.InputFmtPptx,
	".xlsx":     common.InputFmtXlsx,
	".odt":      common.InputFmtOdt,
	".odp":      common.InputFmtOdp,
	".ods":      common.InputFmtOds,
}

// Detect returns input format using file name extension first and content
// signature when extension is not known.
func Detect(name string, data []byte) (common.InputFmt, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return 0, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	f, err := common.ParseInputFmt(kind.Extension)
	if err != nil {
		return 0, fmt.Errorf("%s (%s): %w", name, kind.MIME.Value, ErrUnsupportedFormat)
	}
	return f, nil
}

// Extract reads r completely and returns its text. Name is used for format
// detection only.
func Extract(ctx context.Context, r io.Reader, name string, log *zap.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read input: %w", err)
	}
	format, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	log.Debug("Extracting text", zap.String("name", name), zap.Stringer("format", format), zap.Int("size", len(data)))

	text, err := extractors[format](data)
	if err != nil {
		return nil, fmt.Errorf("unable to extract %s text: %w", format, err)
	}
	return &Result{Format: format, Text: text, Size: len(data)}, nil
}
