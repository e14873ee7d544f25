package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"docconv/common"
	"docconv/config"
	"docconv/state"
)

const sampleHTML = `<html><head><title>Sample</title><style>.note { color: red }</style></head>
<body><h1>Heading</h1><p class="note">Some <b>bold</b> text</p>
<table><tr><td>a</td><td>b</td></tr></table><ul><li>one</li></ul></body></html>`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func fileHasPrefix(t *testing.T, path, prefix string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte(prefix)) {
		t.Errorf("%s does not start with %q", path, prefix)
	}
}

func TestProcess_File(t *testing.T) {
	tests := []struct {
		format common.OutputFmt
		name   string
		prefix string
	}{
		{common.OutputFmtDocx, "page.docx", "PK"},
		{common.OutputFmtPdf, "page.pdf", "%PDF-"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			ctx, env := setupTestEnv(t)
			src := filepath.Join(t.TempDir(), "page.html")
			dst := t.TempDir()
			writeFile(t, src, sampleHTML)

			if err := process(ctx, src, dst, tt.format, env.Log); err != nil {
				t.Fatalf("process() error = %v", err)
			}
			fileHasPrefix(t, filepath.Join(dst, tt.name), tt.prefix)
		})
	}
}

func TestProcess_Dir(t *testing.T) {
	t.Run("keeps structure", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		src, dst := t.TempDir(), t.TempDir()
		writeFile(t, filepath.Join(src, "a.html"), sampleHTML)
		writeFile(t, filepath.Join(src, "sub", "b.HTM"), sampleHTML)
		writeFile(t, filepath.Join(src, "notes.txt"), "not html")

		if err := process(ctx, src, dst, common.OutputFmtDocx, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
		fileHasPrefix(t, filepath.Join(dst, "a.docx"), "PK")
		fileHasPrefix(t, filepath.Join(dst, "sub", "b.docx"), "PK")
		if _, err := os.Stat(filepath.Join(dst, "notes.docx")); err == nil {
			t.Error("non html file must be skipped")
		}
	})

	t.Run("no dirs", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		env.NoDirs = true
		src, dst := t.TempDir(), t.TempDir()
		writeFile(t, filepath.Join(src, "sub", "deep", "b.html"), sampleHTML)

		if err := process(ctx, src, dst, common.OutputFmtDocx, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
		fileHasPrefix(t, filepath.Join(dst, "b.docx"), "PK")
	})

	t.Run("failures are collected", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		src, dst := t.TempDir(), t.TempDir()
		writeFile(t, filepath.Join(src, "a.html"), sampleHTML)
		writeFile(t, filepath.Join(src, "b.html"), sampleHTML)
		writeFile(t, filepath.Join(dst, "b.docx"), "occupied")

		err := process(ctx, src, dst, common.OutputFmtDocx, env.Log)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "1 of 2") || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("unexpected error: %v", err)
		}
		fileHasPrefix(t, filepath.Join(dst, "a.docx"), "PK")
	})
}

func TestProcess_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := filepath.Join(t.TempDir(), "page.html")
	dst := t.TempDir()
	writeFile(t, src, sampleHTML)
	writeFile(t, filepath.Join(dst, "page.docx"), "old")

	if err := process(ctx, src, dst, common.OutputFmtDocx, env.Log); err == nil {
		t.Fatal("existing output must not be replaced without overwrite")
	}

	env.Overwrite = true
	if err := process(ctx, src, dst, common.OutputFmtDocx, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	fileHasPrefix(t, filepath.Join(dst, "page.docx"), "PK")
}

func TestProcess_Errors(t *testing.T) {
	ctx, env := setupTestEnv(t)

	if err := process(ctx, filepath.Join(t.TempDir(), "missing.html"), t.TempDir(), common.OutputFmtDocx, env.Log); err == nil {
		t.Error("expected error for missing source")
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	src := filepath.Join(t.TempDir(), "page.html")
	writeFile(t, src, sampleHTML)
	if err := process(canceled, src, t.TempDir(), common.OutputFmtDocx, env.Log); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := map[string]bool{
		"a.html":       true,
		"b.HTM":        true,
		"c.xhtml":      false,
		"d.txt":        false,
		"no-extension": false,
	}
	for name, want := range tests {
		if got := isSourceFile(name); got != want {
			t.Errorf("isSourceFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestExtractText(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		src := filepath.Join(t.TempDir(), "data.csv")
		writeFile(t, src, "a,b\n1,2\n")

		var out bytes.Buffer
		if err := extractText(ctx, src, "", &out, env.Log); err != nil {
			t.Fatalf("extractText() error = %v", err)
		}
		if got := out.String(); got != "a\tb\n1\t2\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("into directory", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		src := filepath.Join(t.TempDir(), "page.html")
		dst := t.TempDir()
		writeFile(t, src, sampleHTML)

		if err := extractText(ctx, src, dst, nil, env.Log); err != nil {
			t.Fatalf("extractText() error = %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dst, "page.txt"))
		if err != nil {
			t.Fatal(err)
		}
		want := "Heading\nSome bold text\na b\none"
		if string(data) != want {
			t.Errorf("text = %q, want %q", data, want)
		}
	})

	t.Run("into file", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		src := filepath.Join(t.TempDir(), "readme.md")
		dst := filepath.Join(t.TempDir(), "out", "text.txt")
		writeFile(t, src, "# Title")

		if err := extractText(ctx, src, dst, nil, env.Log); err != nil {
			t.Fatalf("extractText() error = %v", err)
		}
		fileHasPrefix(t, dst, "# Title")
	})

	t.Run("too large", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		env.Cfg.Extract.MaxSizeMB = 1
		src := filepath.Join(t.TempDir(), "big.txt")
		writeFile(t, src, strings.Repeat("x", 1<<20+1))

		var out bytes.Buffer
		if err := extractText(ctx, src, "", &out, env.Log); err == nil {
			t.Error("expected size limit error")
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		ctx, env := setupTestEnv(t)
		src := filepath.Join(t.TempDir(), "data.bin")
		writeFile(t, src, "\x00\x01\x02")

		var out bytes.Buffer
		if err := extractText(ctx, src, "", &out, env.Log); err == nil {
			t.Error("expected unsupported format error")
		}
	})
}
