// Package logging provides config-driven categorized file-based logging.
// Logs are written to .ctxforge/logs/ with separate files per category.
// Logging is controlled by the logging block in .ctxforge.yaml - when
// debug_mode is false, no logs are written.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and initialization
	CategoryConfig  Category = "config"  // Configuration loading and watching
	CategoryWorld   Category = "world"   // Workspace enumeration, file collection
	CategorySummary Category = "summary" // Structural summarization
	CategoryPrompt  Category = "prompt"  // Ranking, packing, assembly
	CategoryContext Category = "context" // Engine lifecycle, reference store
)

// loggingConfig mirrors the logging block of .ctxforge.yaml to avoid a
// circular import with internal/config.
type loggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

type configFile struct {
	Logging loggingConfig `yaml:"logging"`
}

// Logger wraps a standard logger with category and file output
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	config    loggingConfig
	configMu  sync.RWMutex
	logLevel  int
)

// Log levels
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Initialize sets up the logging directory and loads config.
// Should be called once at startup with the workspace path.
func Initialize(workspace string) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	logsDir = filepath.Join(workspace, ".ctxforge", "logs")

	if err := loadConfig(workspace); err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not load config: %v\n", err)
		config.DebugMode = false
	}

	// Only create the logs directory when debug mode is on
	if !config.DebugMode {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== ctxforge logging initialized ===")
	boot.Info("Workspace: %s", workspace)
	boot.Info("Log level: %s", config.Level)

	return nil
}

// loadConfig reads the logging block from .ctxforge.yaml
func loadConfig(workspace string) error {
	configMu.Lock()
	defer configMu.Unlock()

	data, err := os.ReadFile(filepath.Join(workspace, ".ctxforge.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			// No config = production mode (no logging)
			config.DebugMode = false
			return nil
		}
		return err
	}

	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	config = cf.Logging

	switch config.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}

	return nil
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return config.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !config.DebugMode {
		return false
	}
	if config.Categories == nil {
		return true
	}
	enabled, exists := config.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode or the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix for easy rotation
	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l

	return l
}

// Debug logs a debug message (only if level <= debug)
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message (only if level <= info)
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message (only if level <= warn)
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message (always logged if logger exists)
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Timer measures operation duration for performance logging
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// Convenience functions - quick logging without getting a logger first.
// These are no-ops if the category is disabled.

// World logs to the world category
func World(format string, args ...interface{}) {
	Get(CategoryWorld).Info(format, args...)
}

// WorldDebug logs debug to the world category
func WorldDebug(format string, args ...interface{}) {
	Get(CategoryWorld).Debug(format, args...)
}

// ContextDebug logs debug to the context category
func ContextDebug(format string, args ...interface{}) {
	Get(CategoryContext).Debug(format, args...)
}

// SummaryDebug logs debug to the summary category
func SummaryDebug(format string, args ...interface{}) {
	Get(CategorySummary).Debug(format, args...)
}

// PromptDebug logs debug to the prompt category
func PromptDebug(format string, args ...interface{}) {
	Get(CategoryPrompt).Debug(format, args...)
}
