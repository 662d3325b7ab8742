// Package exitcodes provides centralized exit code definitions and error handling for the nsdebug CLI.
// Exit codes are organized in ranges to categorize different types of failures:
//
//	0:     Success
//	1-9:   Input/Configuration Errors (e.g., missing arguments, invalid config)
//	10-19: Namespace Check Results (e.g., a namespace is disabled in strict mode)
//	20-29: Runtime Errors (e.g., I/O errors)
//	30-39: Internal Errors
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingRequiredArg      = 1 // Required positional argument not provided
	ExitInputConfigurationError = 2 // General configuration error
	ExitInvalidConfigKey        = 3 // Unknown key passed to config set
	ExitInvalidOutputFormat     = 4 // Unsupported --output value

	// Namespace Check Results (10-19)
	ExitNamespaceDisabled = 10 // At least one checked namespace is disabled (--strict)

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // IO operation error

	// Internal Errors (30-39)
	ExitInternalError = 30 // Internal error in command execution
)

// ExitCodeError wraps an error with an exit code for consistent error handling.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its code.
// Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeDescriptions maps exit codes to their human-readable descriptions
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingRequiredArg:      "Required argument not provided",
	ExitInputConfigurationError: "General configuration error",
	ExitInvalidConfigKey:        "Unknown configuration key",
	ExitInvalidOutputFormat:     "Unsupported output format",
	ExitNamespaceDisabled:       "Namespace disabled",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "IO operation error",
	ExitInternalError:           "Internal error in command execution",
}
