package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide SugaredLogger.
// It discards everything until Initialize or InitializeConsole is called.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize installs a JSON production logger with the given level.
func Initialize(level string) error {
	return install(zap.NewProductionConfig(), level)
}

// InitializeConsole installs a human readable logger on stderr.
// The tracker CLI uses it so log lines do not mix with command output.
func InitializeConsole(level string) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	return install(cfg, level)
}

func install(cfg zap.Config, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger.Sugar()
	return nil
}

// Sync flushes any buffered entries.
func Sync() {
	_ = Log.Sync()
}
