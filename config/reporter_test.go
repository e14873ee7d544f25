package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_StoreAndClose(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(tmpDir, "source.html")
	if err := os.WriteFile(src, []byte("<p>hello</p>"), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	sub := filepath.Join(tmpDir, "media")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	r.Store("source.html", src)
	r.Store("media", sub)
	r.Store("missing.txt", filepath.Join(tmpDir, "nope.txt"))
	r.StoreData("model.txt", []byte("Document"))
	r.StoreData("model.txt", []byte("Document again"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["source.html"] != "<p>hello</p>" {
		t.Errorf("source.html = %q", files["source.html"])
	}
	if files["media/a.txt"] != "a" {
		t.Errorf("media/a.txt = %q", files["media/a.txt"])
	}
	if files["model.txt"] != "Document" {
		t.Errorf("model.txt = %q", files["model.txt"])
	}
	if _, ok := files["missing.txt"]; ok {
		t.Error("absent file should not be archived")
	}

	var versioned int
	for name := range files {
		if strings.HasPrefix(name, "model.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected one versioned model.txt entry, got %d", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "source.html") {
		t.Errorf("MANIFEST does not list source.html:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreConflictPanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("a", "/tmp/two")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("c", nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name on nil report = %q, want empty", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
