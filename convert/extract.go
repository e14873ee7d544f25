package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docconv/extract"
	"docconv/state"
)

// Extract writes plain text of the source document either to destination
// file or to standard output.
func Extract(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	log.Info("Extraction starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return extractText(ctx, src, cmd.Args().Get(1), out, log)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// extractText processes single file, when dst is empty result goes to out.
func extractText(ctx context.Context, src, dst string, out io.Writer, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if limit := int64(env.Cfg.Extract.MaxSizeMB) << 20; fi.Size() > limit {
		return fmt.Errorf("input is too large (%d bytes, limit %d MB)", fi.Size(), env.Cfg.Extract.MaxSizeMB)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source: %w", err)
	}
	defer file.Close()

	res, err := extract.Extract(ctx, file, src, log)
	if err != nil {
		return fmt.Errorf("unable to extract text from (%s): %w", src, err)
	}
	log.Debug("Text extracted", zap.Stringer("format", res.Format), zap.Int("size", res.Size), zap.Int("length", len(res.Text)))

	name := buildTextPath(src, dst)
	if name == "" {
		if _, err := io.WriteString(out, res.Text+"\n"); err != nil {
			return fmt.Errorf("unable to write text: %w", err)
		}
		return nil
	}

	if err := prepareOutput(name, env.Overwrite, log); err != nil {
		return err
	}
	if err := os.WriteFile(name, []byte(res.Text), 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	env.Rpt.Store("result/"+filepath.Base(name), name)
	log.Info("Text written", zap.String("to", name))
	return nil
}
