package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger represents application logger.
type Logger struct {
	*zap.SugaredLogger
}

// New creates new Logger instance with the specified level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func New(level string) *Logger {
	cfg := zap.NewProductionConfig()
	lvl := new(zapcore.Level)
	if err := lvl.Set(level); err != nil {
		*lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(*lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.Fields(zap.String("service", "blog-auth-server")))
	if err != nil {
		l = zap.NewExample()
	}
	return &Logger{SugaredLogger: l.Sugar()}
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(l *zap.Logger) *Logger {
	return &Logger{SugaredLogger: l.Sugar()}
}

func (l *Logger) Debug(msg string, args ...any) { l.SugaredLogger.Debugw(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.SugaredLogger.Infow(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.SugaredLogger.Warnw(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.SugaredLogger.Errorw(msg, args...) }

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.SugaredLogger.Errorw(msg, args...)
	_ = l.SugaredLogger.Sync()
	os.Exit(1)
}
