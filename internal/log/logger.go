// SPDX-License-Identifier: MIT
//
// Package log is the leveled logger shared by the command line, the
// configuration loader and the platform layer. Messages go through a zap
// console core; the level is a zap.AtomicLevel so it can change at runtime.
package log

import (
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel is the severity of a message.
type LogLevel uint32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var zapLevels = [...]zapcore.Level{
	zapcore.DebugLevel,
	zapcore.InfoLevel,
	zapcore.WarnLevel,
	zapcore.ErrorLevel,
	zapcore.FatalLevel,
}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLevel is case-insensitive and accepts "warning" for LevelWarn. An
// unknown name yields LevelInfo and false.
func ParseLevel(name string) (LogLevel, bool) {
	name = strings.ToUpper(name)
	if name == "WARNING" {
		return LevelWarn, true
	}
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i), true
		}
	}
	return LevelInfo, false
}

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar  atomic.Pointer[zap.SugaredLogger]
	stderr = zapcore.Lock(os.Stderr)
)

func init() {
	SetOutput(stderr)
}

// SetOutput redirects output to w. The level is kept.
func SetOutput(w zapcore.WriteSyncer) {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	enc.CallerKey = ""
	enc.StacktraceKey = ""
	enc.ConsoleSeparator = " "

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), w, level)
	sugar.Store(zap.New(core).Sugar())
}

// Sync flushes buffered output.
func Sync() error { return sugar.Load().Sync() }

func SetLevel(l LogLevel) {
	if int(l) >= len(zapLevels) {
		l = LevelFatal
	}
	level.SetLevel(zapLevels[l])
}

func GetLevel() LogLevel {
	for i, zl := range zapLevels {
		if zl == level.Level() {
			return LogLevel(i)
		}
	}
	return LevelInfo
}

func Debugf(format string, v ...any) { sugar.Load().Debugf(format, v...) }
func Infof(format string, v ...any)  { sugar.Load().Infof(format, v...) }
func Warnf(format string, v ...any)  { sugar.Load().Warnf(format, v...) }
func Errorf(format string, v ...any) { sugar.Load().Errorf(format, v...) }

// Fatalf logs regardless of the level and exits with status 1.
func Fatalf(format string, v ...any) { sugar.Load().Fatalf(format, v...) }

// Since logs at debug level how long ago start was; use with defer.
func Since(what string, start time.Time) {
	if level.Enabled(zapcore.DebugLevel) {
		sugar.Load().Debugw(what, "elapsed", time.Since(start))
	}
}
