package htmlsign_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, htmlsign.ExitSuccess},
		{"unknown flag", errors.New("unknown flag: --foo"), htmlsign.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), htmlsign.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), htmlsign.ExitUsageError},
		{"required flag", errors.New(`required flag(s) "input" not set`), htmlsign.ExitUsageError},
		{"invalid argument", errors.New(`invalid argument "abc" for "--retries"`), htmlsign.ExitUsageError},
		{"general error", errors.New("something went wrong"), htmlsign.ExitGeneralError},
		{"invalid config", fmt.Errorf("bad: %w", htmlsign.ErrInvalidConfig), htmlsign.ExitConfigError},
		{"input not found", fmt.Errorf("x: %w", htmlsign.ErrInputNotFound), htmlsign.ExitInputNotFound},
		{"signer not found", fmt.Errorf("gpg: %w", htmlsign.ErrSignerNotFound), htmlsign.ExitSignerNotFound},
		{"approval denied", htmlsign.ErrApprovalDenied, htmlsign.ExitApprovalDenied},
		{"signing failed", fmt.Errorf("gpg: %w", htmlsign.ErrSigningFailed), htmlsign.ExitSigningFailed},
		{"invalid output", htmlsign.ErrInvalidSignedOutput, htmlsign.ExitSigningFailed},
		{"partial failure", fmt.Errorf("2 of 5 file(s): %w", htmlsign.ErrPartialFailure), htmlsign.ExitPartialFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsign.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
