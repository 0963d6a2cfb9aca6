package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewWithWriter builds the logger shared by every component. An unknown
// level falls back to info.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "mealtoys",
		ReportTimestamp: true,
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
