// Package logger configures the zap logger shared by vimode.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	l       = zap.NewNop()
	logFile *os.File
)

// L returns the global logger. It is a no-op logger until Init runs.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return l
}

// S returns the sugared global logger.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Init installs a global logger at level. Logs go to path, or to stderr
// when path is empty. The path can also come from VIMODE_LOG_FILE.
func Init(level, path string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	if path == "" {
		path = os.Getenv("VIMODE_LOG_FILE")
	}

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	var file *os.File
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		sink = zapcore.AddSync(file)
	}

	logger := New(sink, lvl)

	mu.Lock()
	prevFile := logFile
	l, logFile = logger, file
	mu.Unlock()
	if prevFile != nil {
		_ = prevFile.Close()
	}

	logger.Debug("logger initialized", zap.String("level", lvl.String()), zap.String("path", path))
	return nil
}

// New builds a console logger writing to w.
func New(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), w, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Close flushes the global logger and closes its file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = l.Sync()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	l = zap.NewNop()
}
