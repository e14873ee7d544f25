package convert

import (
	"path/filepath"
	"regexp"
	"testing"

	"docconv/common"
	"docconv/content"
	"docconv/model"
)

func testContent(title string) *content.Content {
	doc := model.New()
	doc.Title = title
	return &content.Content{SrcName: "page.html", Doc: doc}
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		noDirs        bool
		transliterate bool
		template      string
		format        common.OutputFmt
		want          string
	}{
		{"simple", "page.html", false, false, "", common.OutputFmtDocx, "page.docx"},
		{"keeps dirs", "site/docs/page.htm", false, false, "", common.OutputFmtPdf, "site/docs/page.pdf"},
		{"no dirs", "site/docs/page.html", true, false, "", common.OutputFmtDocx, "page.docx"},
		{"transliterate", "Привет мир.html", false, true, "", common.OutputFmtDocx, "privet-mir.docx"},
		{"template title", "docs/page.html", false, false, "{{ .Title | lower }}", common.OutputFmtDocx, "docs/annual report.docx"},
		{"template subdirs", "docs/page.html", true, false, "{{ .Format }}/{{ .SourceFile }}", common.OutputFmtPdf, "pdf/page.pdf"},
		{"template transliterated", "page.html", false, true, "{{ .Title }}", common.OutputFmtDocx, "annual-report.docx"},
		{"template cannot escape", "page.html", true, false, "../../{{ .SourceFile }}", common.OutputFmtDocx, "page.docx"},
		{"broken template falls back", "page.html", false, false, "{{ .Title", common.OutputFmtDocx, "page.docx"},
		{"unknown field falls back", "page.html", false, false, "{{ .Author }}", common.OutputFmtDocx, "page.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := setupTestEnv(t)
			env.NoDirs = tt.noDirs
			env.Cfg.Document.FileNameTransliterate = tt.transliterate
			env.Cfg.Document.OutputNameTemplate = tt.template

			got := buildOutputPath(testContent("Annual Report"), filepath.FromSlash(tt.src), "/output", tt.format, env)
			want := filepath.Join("/output", filepath.FromSlash(tt.want))
			if got != want {
				t.Errorf("buildOutputPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"a", []string{"a"}},
		{"a/b/c", []string{"a", "b", "c"}},
		{"a/b/", []string{"a", "b"}},
		{"../a/./b", []string{"a", "b"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitAndCleanPath(filepath.FromSlash(tt.path))
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
				break
			}
		}
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"plain text", "simple-text", "simple-text"},
		{"title", "{{ .Title }}", "Annual Report"},
		{"source", "{{ .SourceDir }}-{{ .SourceFile }}", "docs/sub-page"},
		{"format", "{{ .Format | upper }}", "DOCX"},
		{"context", "{{ .Context }}", "output_name_template"},
		{"sprig default", `{{ "" | default .SourceFile }}`, "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(testContent("Annual Report"), filepath.FromSlash("docs/sub/page.html"), "output_name_template", tt.template, common.OutputFmtDocx)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("date", func(t *testing.T) {
		got, err := expandTemplate(nil, "page.html", "output_name_template", "{{ .Date }}", common.OutputFmtPdf)
		if err != nil {
			t.Fatalf("expandTemplate() error = %v", err)
		}
		if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(got) {
			t.Errorf("unexpected date %q", got)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		if _, err := expandTemplate(nil, "page.html", "output_name_template", "{{ .Title", common.OutputFmtPdf); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestBuildTextPath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		src, dst, want string
	}{
		{"a/report.docx", "", ""},
		{"a/report.docx", dir, filepath.Join(dir, "report.txt")},
		{"a/report.docx", filepath.Join(dir, "x.out"), filepath.Join(dir, "x.out")},
	}
	for _, tt := range tests {
		if got := buildTextPath(tt.src, tt.dst); got != tt.want {
			t.Errorf("buildTextPath(%q, %q) = %q, want %q", tt.src, tt.dst, got, tt.want)
		}
	}
}
