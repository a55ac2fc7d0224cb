package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// AppLogger is a structured JSON logger shared by every pipeline stage.
type AppLogger struct {
	*logrus.Logger
	file *os.File
}

// NewAppLogger creates a logger from config. With a file path it logs to
// both stderr and the file.
func NewAppLogger(config models.LoggerConfig) (*AppLogger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	appLogger := &AppLogger{Logger: l}

	if config.FilePath != "" {
		if err := appLogger.setupFileOutput(config.FilePath); err != nil {
			return nil, fmt.Errorf("failed to setup file output: %w", err)
		}
	}

	return appLogger, nil
}

func (al *AppLogger) setupFileOutput(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	al.file = file
	al.SetOutput(io.MultiWriter(os.Stderr, file))
	return nil
}

// Close releases the log file if one is open.
func (al *AppLogger) Close() error {
	if al.file != nil {
		return al.file.Close()
	}
	return nil
}

var (
	globalLogger *AppLogger
	mu           sync.RWMutex
)

// SetGlobalLogger installs the process-wide logger. Called once at startup.
func SetGlobalLogger(l *AppLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = l
}

// Get returns the process-wide logger, falling back to a plain stderr
// logger if startup never installed one.
func Get() *AppLogger {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger == nil {
		return &AppLogger{Logger: logrus.StandardLogger()}
	}
	return globalLogger
}

// Convenience wrappers so call sites read logger.Info(...).

func Info(msg string, fields logrus.Fields) {
	Get().WithFields(fields).Info(msg)
}

func Warn(msg string, fields logrus.Fields) {
	Get().WithFields(fields).Warn(msg)
}

func Error(msg string, fields logrus.Fields) {
	Get().WithFields(fields).Error(msg)
}

func Debug(msg string, fields logrus.Fields) {
	Get().WithFields(fields).Debug(msg)
}
