// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"docconv/common"
	"docconv/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by convert subcommand
	NoDirs       bool
	Overwrite    bool
	OutputFormat common.OutputFmt
	// CodePage overrides charset detection of source documents when set.
	CodePage encoding.Encoding
	// ExtraStyle is applied after stylesheets of every converted document.
	ExtraStyle []byte

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// ForceCodePage makes all sources decoded with IANA named character set,
// returning canonical name of the encoding.
func (e *LocalEnv) ForceCodePage(name string) (string, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return "", fmt.Errorf("character set %q is not supported", name)
	}
	e.CodePage = enc
	canonical, _ := ianaindex.IANA.Name(enc)
	return canonical, nil
}

// LoadExtraStyle reads stylesheet applied to every converted document.
// Empty path keeps previously loaded style.
func (e *LocalEnv) LoadExtraStyle(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read style css from %q: %w", path, err)
	}
	e.ExtraStyle = data
	return nil
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
