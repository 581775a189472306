// Package shared holds helpers common to lanpoker subcommands.
package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger builds the root logger every component derives from. The debug
// flag wins over the configured level.
func SetupLogger(level string, debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
		return logger
	}

	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
