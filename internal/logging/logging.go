package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// Config selects where and how log entries are written.
type Config struct {
	// Level is one of debug, info, warning, error or fatal.
	Level string
	// Format is text or json.
	Format string
	// File is the log file path; empty logs to stderr.
	File string
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
	}
}

// New returns a logger configured by cfg. The returned closer releases the log
// file, if any.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	closer, err := Configure(logger, cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, closer, nil
}

// Configure applies cfg to logger. The logger is left as it was if cfg is
// invalid or the log file cannot be opened.
func Configure(logger *logrus.Logger, cfg Config) (io.Closer, error) {
	var formatter logrus.Formatter
	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		}
	case "", "text":
		formatter = &logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		}
	default:
		return nil, fmt.Errorf("log format must be json or text, got %q", cfg.Format)
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var closer io.Closer = nopCloser{}
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}

	logger.SetOutput(out)
	logger.SetFormatter(formatter)
	logger.SetLevel(level)
	return closer, nil
}

func parseLevel(name string) (logrus.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warning", "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	case "fatal":
		return logrus.FatalLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("log-level %q not recognized", name)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
