package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for scripting and CI consumption.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitNoBinary = 2
	ExitDevice   = 3
	ExitUsage    = 4
	ExitTimeout  = 5
)

// CLIError is a structured error carrying its exit code and category.
type CLIError struct {
	Code    int    `json:"exit_code"`
	Type    string `json:"error"`
	Message string `json:"message"`
}

func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns nil — CLIError is a leaf error.
func (e *CLIError) Unwrap() error { return nil }

// NewBinaryNotFoundError creates an error for a missing adb binary.
func NewBinaryNotFoundError(msg string) *CLIError {
	return &CLIError{Code: ExitNoBinary, Type: "binary_not_found", Message: msg}
}

// NewNoDeviceError creates an error for no usable device.
func NewNoDeviceError(msg string) *CLIError {
	return &CLIError{Code: ExitDevice, Type: "no_device", Message: msg}
}

// NewAmbiguousDeviceError creates an error for multiple candidate devices.
func NewAmbiguousDeviceError(msg string) *CLIError {
	return &CLIError{Code: ExitDevice, Type: "ambiguous_device", Message: msg}
}

// NewUsageError creates an error for invalid arguments.
func NewUsageError(msg string) *CLIError {
	return &CLIError{Code: ExitUsage, Type: "invalid_args", Message: msg}
}

// NewTimeoutError creates an error for an adb invocation exceeding its deadline.
func NewTimeoutError(msg string) *CLIError {
	return &CLIError{Code: ExitTimeout, Type: "timeout", Message: msg}
}

// NewCommandFailedError creates an error for a non-zero adb exit.
func NewCommandFailedError(msg string) *CLIError {
	return &CLIError{Code: ExitInternal, Type: "command_failed", Message: msg}
}

// NewParseError creates an error for unreadable analysis input.
func NewParseError(msg string) *CLIError {
	return &CLIError{Code: ExitInternal, Type: "parse", Message: msg}
}

// ExitCode extracts the exit code from an error.
// Returns ExitInternal (1) for non-CLIError errors, ExitOK (0) for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ExitInternal
}

// FormatError writes the error to w. In JSON mode, it writes structured JSON.
// In text mode, it writes "error: <message>".
func FormatError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		var ce *CLIError
		if !errors.As(err, &ce) {
			ce = &CLIError{
				Code:    ExitInternal,
				Type:    "internal",
				Message: err.Error(),
			}
		}
		data, _ := json.Marshal(ce)
		_, _ = fmt.Fprintln(w, string(data))
		return
	}

	_, _ = fmt.Fprintf(w, "error: %v\n", err)
}
