// Package diag is the best-effort diagnostics sink. Reporting never affects
// control flow; a failed or missing sink is indistinguishable from success.
package diag

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/boardfeed/boardfeed/internal/config"
)

// Sink receives errors the orchestration layer swallows.
type Sink interface {
	Error(scope string, err error)
}

// Nop discards everything. It is the default sink.
type Nop struct{}

func (Nop) Error(string, error) {}

type logSink struct {
	log *logrus.Logger
}

// NewLogSink builds a logrus-backed sink from the log config. When a log file
// is configured output is rotated with lumberjack; otherwise it goes to
// stderr. Setup problems degrade to stderr rather than failing.
func NewLogSink(cfg config.LogConfig) Sink {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.ErrorLevel
	}
	log.SetLevel(level)
	log.SetOutput(buildOutput(cfg))

	return &logSink{log: log}
}

func buildOutput(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}
}

func (s *logSink) Error(scope string, err error) {
	if err == nil {
		return
	}
	s.log.WithField("scope", scope).Error(err.Error())
}
