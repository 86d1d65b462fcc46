package retry

import (
	"context"
	"errors"
	"strings"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// transientSigningPatterns are fragments of gpg diagnostics for conditions
// that clear up on their own.
var transientSigningPatterns = []string{
	"can't connect to the agent",
	"problem with the agent",
	"no gpg-agent running",
	"gpg-agent is not available",
	"resource temporarily unavailable",
	"waiting for lock",
	"connection timed out",
	"timeout",
}

// SigningErrorClassifier implements ErrorClassifier for signing tool failures.
type SigningErrorClassifier struct{}

// NewSigningErrorClassifier creates a new signing error classifier.
func NewSigningErrorClassifier() *SigningErrorClassifier {
	return &SigningErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
// Only failures reported by a signing tool that actually ran qualify;
// a missing binary or a cancelled run never does.
func (c *SigningErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if !errors.Is(err, htmlsign.ErrSigningFailed) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientSigningPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

var _ htmlsign.ErrorClassifier = (*SigningErrorClassifier)(nil)
