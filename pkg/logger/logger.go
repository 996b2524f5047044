package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// ============================================================
// Logger
// ============================================================

var std = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
})

// Init настраивает глобальный логгер; debug включает DEBUG-уровень.
func Init(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	std = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

func Debug(msg string, keyvals ...any) { std.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { std.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { std.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { std.Error(msg, keyvals...) }

// Fatal пишет сообщение и завершает процесс с кодом 1.
func Fatal(msg string, keyvals ...any) { std.Fatal(msg, keyvals...) }
