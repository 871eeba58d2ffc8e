/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package logger writes diagnostics to stderr. Stdout is reserved for data rows.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
)

type (
	alwaysLevel     struct{}
	loggerComposite struct {
		z *zap.Logger
		s *zap.SugaredLogger
	}
)

var (
	zapLogger    *loggerComposite
	DebugEnabled = false
)

// init initializes default logger (to stderr)
func init() {
	setupZapLogger0(zapcore.NewCore(zapcore.NewConsoleEncoder(newEncoderConfig()), zapcore.Lock(os.Stderr), alwaysLevel{}))
}

func (a alwaysLevel) Enabled(level zapcore.Level) bool {
	return true
}

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration:   zapcore.SecondsDurationEncoder,
	}
}

func setupZapLogger0(core zapcore.Core) {
	z := zap.New(core)
	zapLogger = &loggerComposite{
		z: z,
		s: z.Sugar(),
	}
}

// ReplaceCore swaps the underlying core and returns a func restoring the previous one.
// It is meant for tests that assert on diagnostics.
func ReplaceCore(core zapcore.Core) func() {
	old := zapLogger
	setupZapLogger0(core)
	return func() {
		zapLogger = old
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = zapLogger.z.Sync()
}

func Debugz(msg string, fields ...zap.Field) {
	if DebugEnabled {
		zapLogger.z.Debug(msg, fields...)
	}
}
func Infoz(msg string, fields ...zap.Field) {
	zapLogger.z.Info(msg, fields...)
}
func Warnz(msg string, fields ...zap.Field) {
	zapLogger.z.Warn(msg, fields...)
}
func Errorz(msg string, fields ...zap.Field) {
	zapLogger.z.Error(msg, fields...)
}

func Debugf(msg string, args ...interface{}) {
	if DebugEnabled {
		zapLogger.s.Debugf(msg, args...)
	}
}
func Infof(msg string, args ...interface{}) {
	zapLogger.s.Infof(msg, args...)
}
func Warnf(msg string, args ...interface{}) {
	zapLogger.s.Warnf(msg, args...)
}
func Errorf(msg string, args ...interface{}) {
	zapLogger.s.Errorf(msg, args...)
}

func IsDebugEnabled() bool {
	return DebugEnabled
}
