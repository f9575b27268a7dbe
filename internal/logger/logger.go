// Package logger configures the narration sink install and uninstall steps
// are reported to as they happen.
package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return l
}
