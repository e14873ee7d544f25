package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"docconv/common"
	"docconv/content"
	"docconv/convert/docx"
	"docconv/convert/pdf"
	"docconv/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Document.OutputFormat
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = common.ParseOutputFmt(to); err != nil {
			log.Warn("Unknown output format requested, switching to configured", zap.Error(err),
				zap.Stringer("format", env.Cfg.Document.OutputFormat))
			format = env.Cfg.Document.OutputFormat
		}
	}
	env.OutputFormat = format

	if css := cmd.String("stylesheet"); len(css) > 0 {
		env.Cfg.Document.StylesheetPath = css
	}
	if err := env.LoadExtraStyle(env.Cfg.Document.StylesheetPath); err != nil {
		return err
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// charset detection fails on documents without meta and BOM, user may
	// know better
	if cp := cmd.String("charset"); len(cp) > 0 {
		if name, err := env.ForceCodePage(cp); err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.Error(err))
		} else {
			log.Debug("Forcefully decoding all sources", zap.String("charset", name))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// isSourceFile reports files which are picked up when directory is processed.
func isSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// process converts single file or every HTML file under directory.
func process(ctx context.Context, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, format, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	return processFile(ctx, src, filepath.Base(src), dst, format, log)
}

// processDir walks directory tree converting HTML files. Failure of a single
// file does not stop processing, all failures are returned together.
func processDir(ctx context.Context, dir, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	var failed error
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isSourceFile(path) {
			log.Debug("Skipping file, not recognized as HTML", zap.String("file", path))
			return nil
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processFile(ctx, path, src, dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			failed = multierr.Append(failed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if n := len(multierr.Errors(failed)); n > 0 {
		return fmt.Errorf("unable to convert %d of %d file(s): %w", n, count, failed)
	}
	return nil
}

// processFile converts single HTML file. "path" is the location of the source
// file, "src" is part of it relative to the processed directory (base file
// name when file was specified directly). "dst" is the destination directory.
func processFile(ctx context.Context, path, src, dst string, format common.OutputFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// a single broken document must not stop directory processing
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open source: %w", err)
	}
	defer file.Close()

	c, err := content.Prepare(ctx, file, path, log)
	if err != nil {
		return fmt.Errorf("unable to parse html source (%s): %w", src, err)
	}

	outputName = buildOutputPath(c, src, dst, format, env)
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}

	switch format {
	case common.OutputFmtDocx:
		err = docx.Generate(ctx, c, outputName, &env.Cfg.Document, log)
	case common.OutputFmtPdf:
		err = pdf.Generate(ctx, c, outputName, &env.Cfg.Document, log)
	default:
		err = fmt.Errorf("unsupported output format %s", format)
	}
	if err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}

	// keep conversion result for debugging
	if rel, err := filepath.Rel(dst, outputName); err == nil {
		env.Rpt.Store("result/"+filepath.ToSlash(rel), outputName)
	}
	return nil
}

// prepareOutput makes sure output file could be written.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		if err = os.Remove(name); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
