package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tinyhabits/internal/logger"
)

// Warning wraps an error that should be reported to the user without
// halting the current flow, e.g. progress that is not yet durably saved.
type Warning struct {
	Err error
}

func (w *Warning) Error() string {
	return w.Err.Error()
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// NewWarning marks err as non-blocking. A nil err stays nil.
func NewWarning(err error) error {
	if err == nil {
		return nil
	}
	return &Warning{Err: err}
}

// IsWarning reports whether err is a non-blocking warning
func IsWarning(err error) bool {
	var w *Warning
	return stderrors.As(err, &w)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if IsWarning(err) {
		return fmt.Sprintf("Warning: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
