// Package logging is the process-wide diagnostic log. The terminal belongs
// to the UI, so output goes to a dated file. Every helper is a no-op until
// Init or SetOutput has run.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex

	// logger is nil until Init or SetOutput
	logger *log.Logger

	// logFile is the file handle opened by Init
	logFile *os.File
)

// FileName returns the log file name for day.
func FileName(day time.Time) string {
	return fmt.Sprintf("peoplesnews-%s.log", day.Format("2006-01-02"))
}

// Init opens today's log file under dir/logs and routes all helpers to it.
func Init(dir string, level log.Level) error {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logDir, FileName(time.Now())), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	logFile = f
	mu.Unlock()

	SetOutput(f, level)
	Info("peoplesnews started", "pid", os.Getpid())
	return nil
}

// SetOutput routes the helpers to w.
func SetOutput(w io.Writer, level log.Level) {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	Info("peoplesnews shutting down")

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = nil
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}

// WithPrefix returns a prefixed logger, or one that discards everything
// before Init.
func WithPrefix(prefix string) *log.Logger {
	if l := current(); l != nil {
		return l.WithPrefix(prefix)
	}
	return log.NewWithOptions(io.Discard, log.Options{Prefix: prefix})
}
