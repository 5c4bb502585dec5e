package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger returns a logger writing json lines to stderr. The level is one
// of debug, info, warn, error. An unknown level falls back to info.
func NewLogger(level string) *zapLogger {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &zapLogger{sugar: l.Sugar()}
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *zapLogger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *zapLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *zapLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *zapLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}
