package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/multierr"

	"docconv/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty report.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates everything necessary to prepare debug archive: source
// documents, logs, configuration and intermediate dumps. All methods are safe
// to call on nil Report, which means no report has been requested.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close writes debug archive.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
	}()
	return r.finalize()
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers path to file or directory to be put in the archive later.
// Content is read when report is closed.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}

	if old, exists := r.entries[name]; exists && old.original != path {
		// Somewhere I do not know what I am doing.
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData saves binary data to be put in the archive later as a file under
// requested name. Repeated names are versioned with a timestamp.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}

	e := entry{data: data, stamp: time.Now()}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
}

func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	names, manifest := prepareManifest(r.entries)
	if err := saveFile(arc, "MANIFEST", time.Now(), manifest); err != nil {
		return multierr.Append(err, arc.Close())
	}

	// in the same order as in manifest
	for _, name := range names {
		if err := r.saveEntry(arc, name, r.entries[name]); err != nil {
			return multierr.Append(fmt.Errorf("unable to store %s in report: %w", name, err), arc.Close())
		}
	}
	return arc.Close()
}

func (r *Report) saveEntry(arc *zip.Writer, name string, e entry) error {
	if e.data != nil {
		return saveFile(arc, name, e.stamp, bytes.NewReader(e.data))
	}

	info, err := os.Stat(e.actual)
	if err != nil {
		// ignoring absent files
		return nil
	}
	switch {
	case info.Mode().IsRegular():
		f, err := os.Open(e.actual)
		if err != nil {
			return err
		}
		defer f.Close()
		return saveFile(arc, name, info.ModTime(), f)
	case info.Mode().IsDir():
		return saveDir(arc, name, e.actual)
	}
	return nil
}

func prepareManifest(entries map[string]entry) ([]string, *bytes.Buffer) {
	now := time.Now()

	buf := new(bytes.Buffer)
	keys := slices.Sorted(maps.Keys(entries))
	for _, k := range keys {
		e := entries[k]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		src := e.original
		if e.data != nil {
			src = fmt.Sprintf("<%d bytes>", len(e.data))
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), k, src, e.actual)
	}
	return keys, buf
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func saveDir(dst *zip.Writer, name, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			// ignore links, sockets, etc.
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return saveFile(dst, filepath.ToSlash(filepath.Join(name, rel)), info.ModTime(), f)
	})
}
