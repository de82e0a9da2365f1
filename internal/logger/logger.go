// Package logger provides a thin factory over charmbracelet/log so the
// engine and its CLI share one logging style: prefixed, level-filtered,
// text-formatted output to stdout.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a charm logger with the given prefix, honoring the global
// log level (set via log.SetLevel or CLI flags).
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a charm logger with explicit options, for
// callers that need caller/timestamp reporting or a non-default level.
func NewWithConfig(prefix string, level log.Level, reportCaller, reportTimestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    reportCaller,
		ReportTimestamp: reportTimestamp,
		Formatter:       formatter,
	})
}
