// Package errors formats errors for terminal output.
package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/tasklit/internal/logger"
)

const prefix = "Error: "

var exit = os.Exit

// Format prefixes err for display. A nil error formats as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return prefix + err.Error()
}

func Formatf(format string, args ...any) string {
	return prefix + fmt.Sprintf(format, args...)
}

// Report logs err and writes its formatted form to w. It reports whether
// anything was written.
func Report(w io.Writer, err error) bool {
	if err == nil {
		return false
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(w, Format(err))
	return true
}

// Fatal reports err on stderr and exits with status 1. A nil error is ignored.
func Fatal(err error) {
	if Report(os.Stderr, err) {
		exit(1)
	}
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
