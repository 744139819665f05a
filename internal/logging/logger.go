// Package logging wraps zap with the thin, stdout-only convention this
// server needs: leveled Debugf/Infof/Warnf/Errorf, a package-level
// default, and a per-connection child logger for correlation. Modeled on
// packetd's logger package, trimmed down since this server has no log
// file or rotation to offer; SetLevel is the one runtime knob, and it
// replaces the package-level default logger.
package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var stdout = os.Stdout

// Level names accepted by SetLevel, matching packetd's convention.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

func toZapLevel(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a leveled, structured logger over a zap.SugaredLogger.
type Logger struct {
	sugared *zap.SugaredLogger
}

func (l Logger) Debugf(template string, args ...any) { l.sugared.Debugf(template, args...) }
func (l Logger) Infof(template string, args ...any)  { l.sugared.Infof(template, args...) }
func (l Logger) Warnf(template string, args ...any)  { l.sugared.Warnf(template, args...) }
func (l Logger) Errorf(template string, args ...any) { l.sugared.Errorf(template, args...) }

// With returns a child Logger carrying the given key/value pairs on
// every subsequent line, used to stamp a connection id onto everything a
// connection's goroutine logs.
func (l Logger) With(args ...any) Logger {
	return Logger{sugared: l.sugared.With(args...)}
}

// New builds a Logger that writes console-formatted lines to stdout at
// the given level.
func New(level string) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stdout)), toZapLevel(level))
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return Logger{sugared: zl.Sugar()}
}

var std = New(LevelInfo)

// SetLevel reconfigures the package-level default logger's level.
func SetLevel(level string) {
	std = New(level)
}

func Debugf(template string, args ...any) { std.Debugf(template, args...) }
func Infof(template string, args ...any)  { std.Infof(template, args...) }
func Warnf(template string, args ...any)  { std.Warnf(template, args...) }
func Errorf(template string, args ...any) { std.Errorf(template, args...) }

// With returns a child of the package-level default logger.
func With(args ...any) Logger { return std.With(args...) }
