package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // verification/scenario failure
	ExitCommandError = 2 // command error (bad paths, bad config)
)

// ExitError carries an exit code with an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error, defaulting to
// ExitFailure for plain errors.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Formatter renders command results as text or JSON.
type Formatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// Response is the JSON envelope for all command output.
type Response struct {
	Status string         `json:"status"`
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError is the error payload inside a Response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success emits data in the configured format. In text mode the data's
// String or default formatting is used.
func (f *Formatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Successf emits a formatted text line, or the same string as JSON data.
func (f *Formatter) Successf(format string, args ...any) error {
	return f.Success(fmt.Sprintf(format, args...))
}

// Error emits an error in the configured format.
func (f *Formatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error:  &ResponseError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "error [%s]: %s\n", code, message)
	return err
}

// Verbosef emits a diagnostic line only in verbose text mode.
func (f *Formatter) Verbosef(format string, args ...any) {
	if !f.Verbose || f.Format == "json" {
		return
	}
	fmt.Fprintf(f.Writer, format+"\n", args...)
}
