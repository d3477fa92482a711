// Package logging configures the global zerolog logger
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds the logging configuration
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Format is the log format (json or console)
	Format string `yaml:"format"`
	// Output is the destination (stderr, file, or both)
	Output string `yaml:"output"`
	// FilePath is the log file path, used when output is file or both
	FilePath string `yaml:"file_path"`
	// MaxSize is the maximum size in megabytes before rotation
	MaxSize int `yaml:"max_size"`
	// MaxBackups is the maximum number of old log files to retain
	MaxBackups int `yaml:"max_backups"`
	// MaxAge is the maximum number of days to retain old log files
	MaxAge int `yaml:"max_age"`
	// Compress determines if rotated files should be compressed
	Compress bool `yaml:"compress"`
}

// DefaultLogConfig returns a LogConfig suited to an interactive terminal
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		FilePath:   "logs/logstat.log",
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
}

// Setup configures the global logger. Stdout is never used so reports
// written there stay machine readable.
func Setup(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultLogConfig()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	switch cfg.Output {
	case "file":
		fw, err := buildFileWriter(cfg)
		if err != nil {
			return err
		}
		writers = append(writers, fw)
	case "both":
		fw, err := buildFileWriter(cfg)
		if err != nil {
			return err
		}
		writers = append(writers, buildStderrWriter(cfg.Format), fw)
	default:
		writers = append(writers, buildStderrWriter(cfg.Format))
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	return nil
}

func buildStderrWriter(format string) io.Writer {
	if format == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// buildFileWriter creates a lumberjack rotated file writer
func buildFileWriter(cfg *LogConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}, nil
}
