// Package logging holds the process-wide slog logger.
//
// Command output is what scripts and the integration harness match on, so
// nothing here ever writes to stdout. Logs go to a JSON file, and the one-line
// notice that debug mode is on goes to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Environment variables a parent process uses to hand its log file to children
const (
	EnvDebug       = "PRODUCTSEARCH_DEBUG"
	EnvDebugFile   = "PRODUCTSEARCH_DEBUG_FILE"
	EnvMaxLogFiles = "PRODUCTSEARCH_MAX_LOG_FILES"
)

const defaultMaxLogFiles = 1000

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize enables a log file.
var Logger = discard()

// Options controls where logs are written
type Options struct {
	Debug bool
	// Dir receives UUID-named log files when File is empty
	Dir string
	// File is a fixed log file; it is never rotated
	File     string
	MaxFiles int
}

// Initialize installs Logger according to opts and the inherited environment.
// It returns the path of the log file in use, or "" when logging is disabled.
func Initialize(opts Options) (string, error) {
	opts = inherit(opts)
	if !opts.Debug && opts.File == "" {
		Logger = discard()
		return "", nil
	}

	path, err := logFilePath(opts)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Inherited logging stays quiet; the parent already printed the notice
	if os.Getenv(EnvDebug) == "" {
		Logger.Info("Debug logging initialized", "log_file", path)
		fmt.Fprintf(os.Stderr, "Debug mode enabled. Logs: %s\n", path)
	}
	return path, nil
}

// inherit fills unset options from the environment of a parent process
func inherit(opts Options) Options {
	if os.Getenv(EnvDebug) == "1" {
		opts.Debug = true
	}
	if f := os.Getenv(EnvDebugFile); f != "" && opts.File == "" {
		opts.File = f
	}
	if v := os.Getenv(EnvMaxLogFiles); v != "" && opts.MaxFiles == defaultMaxLogFiles {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxFiles = n
		}
	}
	return opts
}

func logFilePath(opts Options) (string, error) {
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		return opts.File, nil
	}

	if opts.Dir == "" {
		return "", fmt.Errorf("no log directory configured")
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	if opts.MaxFiles > 0 {
		if err := rotateLogs(opts.Dir, opts.MaxFiles); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}
	return filepath.Join(opts.Dir, uuid.New().String()+".log"), nil
}

// rotateLogs deletes the oldest .log files so that a new one fits under maxFiles
func rotateLogs(dir string, maxFiles int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, entry.Name()), modTime: info.ModTime()})
	}

	excess := len(files) - maxFiles + 1
	if excess <= 0 {
		return nil
	}

	slices.SortFunc(files, func(a, b logFile) int {
		return a.modTime.Compare(b.modTime)
	})
	for _, f := range files[:excess] {
		if err := os.Remove(f.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", f.path, err)
		}
	}
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
