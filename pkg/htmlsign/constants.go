package htmlsign

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // All files signed
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or parameters
	ExitSignerNotFound = 11 // Signing tool binary not found
	ExitApprovalDenied = 12 // User denied in-place overwrite
	ExitSigningFailed  = 13 // Signing tool failed or produced bad output
	ExitInputNotFound  = 14 // Input file or directory not found
	ExitPartialFailure = 15 // Batch finished but some files failed
)

const (
	// DefaultGPGBinary is the signing tool invoked when none is configured.
	DefaultGPGBinary = "gpg"

	// DefaultDigestAlgo is passed to --digest-algo.
	DefaultDigestAlgo = "SHA256"

	// DefaultMarker is written on the first line of the signed text, right
	// before the comment close that exposes the page content.
	DefaultMarker = "https://norgance.com/pgp/"

	// DefaultExtension is the file extension signed in batch mode.
	DefaultExtension = ".html"

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultTimeout guards the whole run against a hung signing tool
	// (for example a pinentry waiting on a terminal nobody watches).
	DefaultTimeout = 10 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 250 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength caps how much of the signing tool's stderr
	// is echoed in error messages.
	MaxErrorPreviewLength = 500
)

// Envelope markers.
const (
	CommentOpen  = "<!--"
	CommentClose = "-->"

	// ClearSignHeader is the first armor line of an OpenPGP clear-signed message.
	ClearSignHeader = "-----BEGIN PGP SIGNED MESSAGE-----"
)
