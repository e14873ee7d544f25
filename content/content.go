// Package content turns parsed HTML into output independent document model.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"docconv/dom"
	"docconv/model"
	"docconv/state"
	"docconv/style"
)

// Content is a converted source document ready to be serialized.
type Content struct {
	SrcName string
	Doc     *model.Document
	Catalog *style.Catalog
}

// Prepare parses HTML source and builds document model using settings
// from the environment stored in ctx.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(filepath.Base(srcName), src)
	}

	var root dom.Node
	if env.CodePage != nil {
		root, err = dom.ParseEncoded(bytes.NewReader(src), env.CodePage)
	} else {
		root, err = dom.Parse(bytes.NewReader(src), "")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}

	cfg := env.Cfg.Document
	b := NewBuilder(Options{
		ImageWidth: cfg.Images.WidthInches,
		BaseDir:    filepath.Dir(srcName),
		AllowLocal: cfg.Images.AllowLocal,
		MaxPixels:  cfg.Images.MaxPixels,
		ExtraStyle: env.ExtraStyle,
	}, log)

	doc, err := b.Build(root)
	if err != nil {
		return nil, err
	}
	if !cfg.TitleFromHTML || doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	}

	c := &Content{
		SrcName: srcName,
		Doc:     doc,
		Catalog: b.Catalog(),
	}
	c.Dump(env.Rpt)
	return c, nil
}
