package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"docconv/common"
	"docconv/config"
	"docconv/content"
	"docconv/state"
)

// buildOutputPath returns constructed output file path/name. It uses either
// source file name or user-defined template and takes into account whether to
// preserve source directory structure on the output. It cleans up path and if
// requested transliterates it.
func buildOutputPath(c *content.Content, src, dst string, format common.OutputFmt, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultFile := buildDefaultFileName(src, format, env)

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName := expandOutputNameTemplate(c, src, format, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}

	return assemblePathWithSubdirs(outDir, expandedName, format, env)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildDefaultFileName(src string, format common.OutputFmt, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return cleanPathSegment(baseName, env) + format.Ext()
}

func expandOutputNameTemplate(c *content.Content, src string, format common.OutputFmt, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(c, src, config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, format)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName string, format common.OutputFmt, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], env) + format.Ext()
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

// splitAndCleanPath splits path into segments dropping empty ones and those
// which would lead outside of the output directory.
func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		if tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}

	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// buildTextPath returns destination of extracted text. Existing directory
// receives file named after the source.
func buildTextPath(src, dst string) string {
	if dst == "" {
		return ""
	}
	if isDir(dst) {
		baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		return filepath.Join(dst, config.CleanFileName(baseName)+".txt")
	}
	return dst
}
