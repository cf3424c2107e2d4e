// Package logger wires a zap core behind the logr façade used throughout
// jason. The UI owns the terminal, so all log output goes to stderr as
// structured JSON; interactive runs typically leave it at level 0 and use
// --debug to raise verbosity.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DevooKim/jason/pkg/settings"
)

type loggerContextKey struct{}

const (
	CommitKey    = "commit"
	VersionKey   = "version"
	BuildTimeKey = "build_time"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

var (
	once sync.Once

	// zapRoot is kept for Sync(); everything else goes through logr.
	zapRoot *zap.Logger

	global *logr.Logger

	noop logr.Logger = logr.Discard()
)

// Get initializes the global logger on first call and returns it. logLevel
// follows zapcore levels: 0 is Info, negative values enable debug output.
func Get(logLevel int8) *logr.Logger {
	once.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		buildInfo, _ := debug.ReadBuildInfo()
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
		).With([]zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
			zap.String(GoVersionKey, buildInfo.GoVersion),
		})

		zapRoot = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WithFatalHook(zapcore.WriteThenPanic),
		)

		l := zapr.NewLogger(zapRoot)
		global = &l
	})
	if global == nil {
		return &noop
	}
	return global
}

// WithLogger attaches lgr to the context for downstream retrieval.
func WithLogger(ctx context.Context, lgr *logr.Logger) context.Context {
	if existing, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && existing == lgr {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, lgr)
}

// FromContext returns the logger attached to ctx, falling back to the
// global logger, then to a no-op logger when Get was never called.
func FromContext(ctx context.Context) *logr.Logger {
	if lgr, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return lgr
	}
	if global != nil {
		return global
	}
	return &noop
}

// Sync flushes buffered log entries; call it once before exit.
func Sync() {
	if zapRoot == nil {
		return
	}
	if err := zapRoot.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError filters the errors Sync reports for pipes and TTYs.
// Windows consoles wrap ERROR_INVALID_HANDLE in *os.PathError, which never
// compares equal to a syscall errno, hence the string match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetGlobalLogger returns the global logger, or a no-op logger when Get was
// never called.
func GetGlobalLogger() *logr.Logger {
	if global != nil {
		return global
	}
	return &noop
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &noop
}
