package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called
// so packages can log from tests without setup.
var Log = zap.NewNop()

// Init installs a development console logger at info level.
func Init() {
	InitWithLevel("info")
}

// InitWithLevel installs a console logger at the given level ("debug",
// "info", "warn", "error"). Unknown levels fall back to info.
func InitWithLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	l, err := cfg.Build()
	if err != nil {
		// Keep whatever logger was installed before.
		Log.Warn("Could not build logger", zap.Error(err))
		return
	}
	Log = l
}

// Sync flushes buffered entries. Errors from syncing stderr on some
// platforms are expected and ignored.
func Sync() {
	_ = Log.Sync()
}
