package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful translation or validation
	ExitFailure      = 1 // Translation or validation failure
	ExitCommandError = 2 // Command error (bad flags, unreadable paths)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes diagnostics in text or JSON form. Diagnostics
// always go to ErrWriter so stdout carries nothing but the rule document.
type OutputFormatter struct {
	Format    string
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON diagnostic envelope.
type CLIResponse struct {
	Status  string    `json:"status"` // always "error"; success output is the rule itself
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error emits a diagnostic for a failed run. In JSON mode the envelope
// carries a v7 trace id for log correlation.
func (f *OutputFormatter) Error(code, message string, details any) {
	if f.Format == "json" {
		_ = json.NewEncoder(f.ErrWriter).Encode(CLIResponse{
			Status:  "error",
			TraceID: uuid.Must(uuid.NewV7()).String(),
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
		return
	}

	fmt.Fprintf(f.ErrWriter, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.ErrWriter, "Details: %v\n", details)
	}
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.ErrWriter, format+"\n", args...)
}
