// Package logger builds the application's structured slog logger from
// configuration: level and format selection, and stdout/stderr/file
// outputs with size-based rotation for the file case.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/steveklabnik/coinbaser/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager owns a configured logger and its output writer.
type Manager struct {
	logger *slog.Logger
	writer io.WriteCloser
}

// NewManager creates a logger manager for the given configuration.
func NewManager(cfg config.LoggingConfig) (*Manager, error) {
	writer, err := createWriter(cfg)
	if err != nil {
		return nil, fmt.Errorf("create log writer: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.Level == "debug",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(level.String()))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Manager{
		logger: slog.New(handler),
		writer: writer,
	}, nil
}

// Logger returns the configured logger.
func (m *Manager) Logger() *slog.Logger {
	return m.logger
}

// Close releases the output writer.
func (m *Manager) Close() error {
	if m.writer != nil {
		return m.writer.Close()
	}
	return nil
}

func createWriter(cfg config.LoggingConfig) (io.WriteCloser, error) {
	switch cfg.Output {
	case "stdout":
		return nopWriteCloser{os.Stdout}, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file path is required when output is 'file'")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		return &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}, nil
	default:
		return nopWriteCloser{os.Stderr}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
