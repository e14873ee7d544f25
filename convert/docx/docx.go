// Package docx serializes document model as Office Open XML word processing
// package.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"docconv/config"
	"docconv/content"
)

// Generate writes DOCX file. Output directory is expected to exist and
// target file is replaced.
func Generate(ctx context.Context, c *content.Content, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("Generating DOCX", zap.String("output", outputPath))

	f, err := os.CreateTemp(filepath.Dir(outputPath), ".docconv-*.docx")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	tmpName := f.Name()
	// clean temporary file, no-op after successful rename
	defer os.Remove(tmpName)

	if err := Write(ctx, c, f, cfg, log); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}

	if cfg.FixZip {
		return copyZipWithoutDataDescriptors(tmpName, outputPath)
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("unable to move output file in place: %w", err)
	}
	return nil
}

// Write produces complete DOCX package into w.
func Write(ctx context.Context, c *content.Content, w io.Writer, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pw := newPackageWriter(cfg, log)
	body := pw.document(c.Doc)

	zw := zip.NewWriter(w)
	defer zw.Close()

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", pw.contentTypes()},
		{"_rels/.rels", packageRels()},
		{"docProps/core.xml", pw.coreProps(c.Doc.Title)},
		{"docProps/app.xml", appProps()},
		{"word/document.xml", body},
		{"word/styles.xml", styles()},
		{"word/numbering.xml", pw.numbering()},
		{"word/_rels/document.xml.rels", pw.documentRels()},
	}
	for _, p := range parts {
		if err := writeXMLToZip(zw, p.name, p.doc); err != nil {
			return fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}
	for _, m := range pw.media {
		if err := writeDataToZip(zw, "word/"+m.target, m.data); err != nil {
			return fmt.Errorf("unable to write image %s: %w", m.target, err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	log.Debug("DOCX package written", zap.Int("images", len(pw.media)), zap.Int("lists", len(pw.numIDs)))
	return nil
}

func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize target file (%s): %w", to, err)
	}
	return out.Close()
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
