// Package logging holds the process-wide structured logger. The terminal
// belongs to the TUI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize enables debug output.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// file is the log file opened by Initialize, if any.
var file *os.File

// Initialize sets up the logger based on the debug flag and log file.
// It returns the path being written to, or "" when logs are discarded.
func Initialize(debug bool, logFile string) (string, error) {
	if err := Close(); err != nil {
		return "", err
	}

	if os.Getenv("POMO_DEBUG") == "1" {
		debug = true
	}
	if envFile := os.Getenv("POMO_DEBUG_FILE"); envFile != "" && logFile == "" {
		logFile = envFile
	}

	if !debug && logFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	if logFile == "" {
		dir, err := defaultLogDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		logFile = filepath.Join(dir, "pomo.log")
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	file = f
	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("Debug logging initialized", "log_file", logFile)

	return logFile, nil
}

func defaultLogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pomo", "logs"), nil
}

// Close closes the log file, if one is open, and discards further logs.
func Close() error {
	if file == nil {
		return nil
	}
	Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	err := file.Close()
	file = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
