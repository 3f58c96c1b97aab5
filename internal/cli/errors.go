package cli

import (
	"errors"
	"fmt"

	"aiupstart.com/snapcode/internal/client"
)

// ExitCode is the process exit status for a failed command.
type ExitCode int

const (
	ExitSuccess      ExitCode = 0
	ExitGeneralError ExitCode = 1
	ExitTransport    ExitCode = 2
	ExitFormat       ExitCode = 3
	ExitConfig       ExitCode = 4
)

// CLIError carries an exit code alongside the message shown to the user.
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func newCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

func wrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// exitCodeFor picks the exit status for err.
func exitCodeFor(err error) ExitCode {
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Code != ExitGeneralError {
		return cliErr.Code
	}
	var formatErr *client.FormatError
	if errors.As(err, &formatErr) {
		return ExitFormat
	}
	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		return ExitTransport
	}
	return ExitGeneralError
}
