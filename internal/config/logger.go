package config

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to stderr with the given prefix.
// The level is read from LOG_LEVEL (debug, info, warn, error); info by default.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})

	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("invalid LOG_LEVEL, using info", "err", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// DiscardLogger returns a logger that drops everything. Used by tests and
// collaborators that were not handed a logger.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}
