package htmlsign

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SignerConfig describes how the external signing tool is invoked and how
// its output is embedded.
type SignerConfig struct {
	// Binary is the signing tool executable (name resolved through PATH, or a path)
	Binary string

	// HomeDir is passed as --homedir when set
	HomeDir string

	// LocalUser selects the signing key (--local-user) when set
	LocalUser string

	// DigestAlgo is passed as --digest-algo
	DigestAlgo string

	// Marker is written before the comment close on the first signed line
	Marker string

	// Env holds extra environment variables for the signing tool
	Env map[string]string

	// SkipSigned leaves files that already carry a clear-signed envelope untouched
	SkipSigned bool

	// Retries is the number of retries for transient signing tool failures
	Retries int
}

// DefaultSignerConfig returns a SignerConfig with the documented defaults.
func DefaultSignerConfig() SignerConfig {
	return SignerConfig{
		Binary:     DefaultGPGBinary,
		DigestAlgo: DefaultDigestAlgo,
		Marker:     DefaultMarker,
		SkipSigned: true,
		Retries:    DefaultRetryMaxAttempts,
	}
}

// Validate checks if the SignerConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *SignerConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Binary) == "" {
		errs = append(errs, fmt.Errorf("Binary is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.DigestAlgo) == "" {
		errs = append(errs, fmt.Errorf("DigestAlgo is required: %w", ErrInvalidConfig))
	}

	// The marker shares a line with the comment close; a newline would
	// push page content into the signed header.
	if strings.ContainsAny(c.Marker, "\r\n") {
		errs = append(errs, fmt.Errorf("Marker must be a single line: %w", ErrInvalidConfig))
	}

	if strings.Contains(c.Marker, CommentClose) || strings.Contains(c.Marker, CommentOpen) {
		errs = append(errs, fmt.Errorf("Marker must not contain HTML comment delimiters: %w", ErrInvalidConfig))
	}

	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("Retries cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// BatchConfig contains all parameters needed to sign a directory tree.
type BatchConfig struct {
	// Root is the directory walked for files to sign
	Root string

	// Extensions filters files by extension (case-insensitive, leading dot optional)
	Extensions []string

	// DryRun lists the files without signing them
	DryRun bool

	// Force skips the interactive approval prompt
	Force bool

	// Timeout is the global timeout for the entire batch
	Timeout time.Duration

	// ReportPath receives a YAML report of the run when set
	ReportPath string
}

// Validate checks if the BatchConfig has all required fields and valid values.
func (c *BatchConfig) Validate() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("Root is required: %w", ErrInvalidConfig))
	}

	if len(c.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("at least one extension is required: %w", ErrInvalidConfig))
	}

	for _, ext := range c.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			errs = append(errs, fmt.Errorf("empty extension in filter: %w", ErrInvalidConfig))
			break
		}
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SignResult is the outcome of signing one file.
type SignResult struct {
	Source         string        `yaml:"source"`
	Destination    string        `yaml:"destination,omitempty"`
	Checksum       string        `yaml:"checksum,omitempty"`
	SignedChecksum string        `yaml:"signed_checksum,omitempty"`
	Skipped        bool          `yaml:"skipped,omitempty"`
	SkipReason     string        `yaml:"skip_reason,omitempty"`
	Duration       time.Duration `yaml:"duration"`
	Err            error         `yaml:"-"`
	Error          string        `yaml:"error,omitempty"`
}

// Failed reports whether signing this file failed.
func (r SignResult) Failed() bool {
	return r.Err != nil
}

// BatchResult aggregates the outcome of a batch run.
type BatchResult struct {
	RunID    string        `yaml:"run_id"`
	Root     string        `yaml:"root"`
	DryRun   bool          `yaml:"dry_run,omitempty"`
	Files    []SignResult  `yaml:"files"`
	Signed   int           `yaml:"signed"`
	Skipped  int           `yaml:"skipped"`
	Failed   int           `yaml:"failed"`
	Duration time.Duration `yaml:"duration"`
}

// Add records r and updates the counters.
func (b *BatchResult) Add(r SignResult) {
	if r.Err != nil {
		r.Error = r.Err.Error()
	}
	b.Files = append(b.Files, r)
	switch {
	case r.Failed():
		b.Failed++
	case r.Skipped:
		b.Skipped++
	default:
		b.Signed++
	}
}

// Err returns ErrPartialFailure wrapped with the failure count when any file failed.
func (b *BatchResult) Err() error {
	if b.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d file(s): %w", b.Failed, len(b.Files), ErrPartialFailure)
}
