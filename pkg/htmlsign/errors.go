package htmlsign

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := service.SignTree(ctx, config)
//	if errors.Is(err, htmlsign.ErrPartialFailure) {
//	    // Some files were signed, inspect result.Files
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates the input file or directory does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrSignerNotFound indicates the signing tool binary could not be located.
	ErrSignerNotFound = errors.New("signing tool not found")

	// ErrSigningFailed indicates the signing tool exited with an error.
	ErrSigningFailed = errors.New("signing failed")

	// ErrInvalidSignedOutput indicates the signing tool produced output that
	// does not embed the original content.
	ErrInvalidSignedOutput = errors.New("invalid signed output")

	// ErrWriteFailed indicates the signed document could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrPartialFailure indicates a batch finished with at least one failed file.
	ErrPartialFailure = errors.New("some files failed to sign")
)

// usageErrorPatterns are substrings of the errors cobra and pflag return
// for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, ErrSignerNotFound):
		return ExitSignerNotFound
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrPartialFailure):
		return ExitPartialFailure
	case errors.Is(err, ErrSigningFailed), errors.Is(err, ErrInvalidSignedOutput):
		return ExitSigningFailed
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
