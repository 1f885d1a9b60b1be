package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/checkfmt/internal/filelock"
)

// FileLogger logs run diagnostics to a per-run file in a log directory.
// Each run gets a timestamped file tagged with a short run ID, and a
// latest.log symlink points to the most recent run. The symlink swap is
// guarded by a directory-level file lock so concurrent runs sharing a log
// directory (e.g. parallel CI jobs) do not race. It is thread-safe and
// supports the same level filtering as ConsoleLogger.
type FileLogger struct {
	logDir   string
	runID    string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing into logDir, creating the
// directory if needed. logLevel follows the same rules as NewConsoleLogger.
func NewFileLogger(logDir, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Short run ID so concurrent runs in the same second get distinct files.
	runID := uuid.New().String()[:8]

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", timestamp, runID))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	if err := updateLatestSymlink(logDir, runFile); err != nil {
		file.Close()
		return nil, err
	}

	fl := &FileLogger{
		logDir:   logDir,
		runID:    runID,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.write(fmt.Sprintf("=== checkfmt run %s ===\n", runID))
	fl.write(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// updateLatestSymlink points latest.log at the current run file, holding the
// directory lock for the remove-and-create pair.
func updateLatestSymlink(logDir, runFile string) error {
	lock := filelock.New(filepath.Join(logDir, ".checkfmt.lock"))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			return fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}

	return nil
}

// RunID returns the short identifier of this run.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the path of the run log file.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// Close closes the underlying run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("trace", "TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("debug", "DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("info", "INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("warn", "WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("error", "ERROR", message)
}

// logWithLevel writes a timestamped, level-tagged line to the run log.
func (fl *FileLogger) logWithLevel(level, tag, message string) {
	if !fl.shouldLog(level) {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	fl.write(fmt.Sprintf("[%s] %s %s\n", timestamp, tag, message))
}

// write appends raw text to the run log under the mutex.
func (fl *FileLogger) write(text string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fmt.Fprint(fl.runLog, text)
}
