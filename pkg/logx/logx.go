// Package logx is a small leveled logger used across the service.
package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var std = log.New(os.Stderr, "", log.LstdFlags|log.Lmsgprefix)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be written.
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= currentLevel.Load()
}

func output(l Level, prefix, msg string) {
	if !enabled(l) {
		return
	}
	std.Print(prefix + msg)
}

func Debug(args ...any) { output(LevelDebug, "DEBUG ", fmt.Sprint(args...)) }
func Debugf(format string, a ...any) { output(LevelDebug, "DEBUG ", fmt.Sprintf(format, a...)) }

func Info(args ...any) { output(LevelInfo, "INFO ", fmt.Sprint(args...)) }
func Infof(format string, a ...any) { output(LevelInfo, "INFO ", fmt.Sprintf(format, a...)) }

func Warn(args ...any) { output(LevelWarn, "WARN ", fmt.Sprint(args...)) }
func Warnf(format string, a ...any) { output(LevelWarn, "WARN ", fmt.Sprintf(format, a...)) }

func Error(args ...any) { output(LevelError, "ERROR ", fmt.Sprint(args...)) }
func Errorf(format string, a ...any) { output(LevelError, "ERROR ", fmt.Sprintf(format, a...)) }

// Fatal logs at error level and exits.
func Fatal(args ...any) {
	std.Print("FATAL " + fmt.Sprint(args...))
	os.Exit(1)
}

func Fatalf(format string, a ...any) {
	std.Print("FATAL " + fmt.Sprintf(format, a...))
	os.Exit(1)
}
