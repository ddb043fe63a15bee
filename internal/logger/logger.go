// Package logger provides the structured log used across streamchat.
// The TUI owns the terminal, so everything goes to a file.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is the default log file for the main process
const DefaultLogPath = "/tmp/streamchat-debug.log"

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
	logPath    = DefaultLogPath
	debug      bool
)

// SetDebug enables or disables debug level logging
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// IsDebug reports whether debug logging is enabled
func IsDebug() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

// Init initializes the logger with a custom path. Subsequent calls are no-ops
// until Reset is called. If Init is never called, DefaultLogPath is used on
// first use.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logPath = path
	logFile = f
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar})
	slogLogger = slog.New(handler)
	initDone = true

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func ensureInit() {
	if initDone {
		return
	}
	if err := openLocked(logPath); err != nil {
		// Print to stderr since we can't log
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		initDone = true
	}
}

// Get returns the root logger. It never returns nil: when the log file could
// not be opened the default slog logger is returned.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil {
		return slog.Default()
	}
	return slogLogger
}

// WithComponent returns a logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.WithComponent("bridge")
//	log.Info("listener started", "kind", kind)
func WithComponent(component string) *slog.Logger {
	return Get().With(slog.String("component", component))
}

// Debugf writes a printf-style debug message.
func Debugf(format string, args ...any) {
	logf(slog.LevelDebug, format, args...)
}

// Warnf writes a printf-style warning.
func Warnf(format string, args ...any) {
	logf(slog.LevelWarn, format, args...)
}

func logf(level slog.Level, format string, args ...any) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Path returns the current log file path
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	logPath = DefaultLogPath
	slogLogger = nil
	debug = false
	levelVar.Set(slog.LevelInfo)
}

// ClearLog removes the current log file. It reports whether a file was removed.
func ClearLog() (bool, error) {
	if err := os.Remove(Path()); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
