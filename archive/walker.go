// Package archive gives read access to zip based document containers.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when requested entry is absent from container.
var ErrNotFound = errors.New("entry not found")

// WalkFunc is called for every matching file entry.
type WalkFunc func(file *zip.File) error

// Open reads zip container held in memory.
func Open(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	// insecure names are rejected by Walk
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("unable to open container: %w", err)
	}
	return zr, nil
}

// Walk visits file entries whose names start with pattern in archive order.
// Directories are skipped. Walking stops on first unsafe entry name or
// when walkFn returns error.
func Walk(zr *zip.Reader, pattern string, walkFn WalkFunc) error {
	for _, f := range zr.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, pattern) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns content of the named entry.
func ReadFile(zr *zip.Reader, name string) ([]byte, error) {
	var data []byte
	found := false
	err := Walk(zr, name, func(f *zip.File) error {
		if f.Name != name || found {
			return nil
		}
		found = true
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %q: %w", name, err)
		}
		defer rc.Close()
		if data, err = io.ReadAll(rc); err != nil {
			return fmt.Errorf("unable to read %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return data, nil
}

func isSafePath(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") || filepath.IsAbs(name) {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(name))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
