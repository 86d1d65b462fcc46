package signer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/htmlsign/internal/checksum"
	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/internal/gpg"
	"github.com/vvka-141/htmlsign/internal/retry"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

const (
	preparedFileName = "prepared.txt"
	signedFileName   = "signed.asc"

	// newFilePerm applies when the destination is not the input file.
	newFilePerm fs.FileMode = 0o644
)

// ClearSigner clear-signs the file at prepared into signed.
type ClearSigner interface {
	ClearSign(ctx context.Context, prepared, signed string) error
}

// Signer signs HTML documents through a ClearSigner.
//
// Source and destination files go through the configured
// FileSystemProvider; the scratch files the signing tool works on always
// live on the OS filesystem.
type Signer struct {
	cfg         htmlsign.SignerConfig
	clearSigner ClearSigner
	fsProvider  filesystem.FileSystemProvider
	checksum    checksum.Calculator
	executor    *retry.Executor
	logger      htmlsign.Logger
	scratchBase string
}

// Option configures a Signer.
type Option func(*Signer)

// WithFileSystem replaces the OS filesystem used for inputs and outputs.
func WithFileSystem(fsProvider filesystem.FileSystemProvider) Option {
	return func(s *Signer) {
		s.fsProvider = fsProvider
	}
}

// WithScratchDir sets the parent of per-call scratch directories.
// Empty means os.TempDir().
func WithScratchDir(dir string) Option {
	return func(s *Signer) {
		s.scratchBase = dir
	}
}

// WithExecutor replaces the retry executor built from SignerConfig.Retries.
func WithExecutor(executor *retry.Executor) Option {
	return func(s *Signer) {
		s.executor = executor
	}
}

// New creates a Signer. It returns an error wrapping
// htmlsign.ErrInvalidConfig when cfg is invalid.
// Panics if clearSigner or logger is nil.
func New(cfg htmlsign.SignerConfig, clearSigner ClearSigner, logger htmlsign.Logger, opts ...Option) (*Signer, error) {
	if clearSigner == nil {
		panic("clearSigner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("signer configuration: %w", err)
	}

	s := &Signer{
		cfg:         cfg,
		clearSigner: clearSigner,
		fsProvider:  filesystem.NewOSFileSystem(),
		checksum:    checksum.New(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.executor == nil {
		s.executor = retry.NewExecutor(
			retry.NewSigningErrorClassifier(),
			retry.NewExponentialBackoff(cfg.Retries),
		)
	}
	s.executor = s.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Info("Signing tool failed (%v), retry %d in %v",
			err, attempt+1, delay.Round(time.Millisecond))
	})

	return s, nil
}

// NewGPG creates a Signer that runs gpg as configured in cfg.
func NewGPG(cfg htmlsign.SignerConfig, logger htmlsign.Logger, opts ...Option) (*Signer, error) {
	return New(cfg, gpg.NewClearSigner(cfg, gpg.NewExecRunner()), logger, opts...)
}

// Sign returns the signed envelope for content.
func (s *Signer) Sign(ctx context.Context, content []byte) ([]byte, error) {
	dir, err := os.MkdirTemp(s.scratchBase, "htmlsign-"+uuid.NewString()+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Error("Failed to remove scratch directory %s: %v", dir, rmErr)
		}
	}()

	prepared := filepath.Join(dir, preparedFileName)
	if err := os.WriteFile(prepared, Prepare(s.cfg.Marker, content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write prepared text: %w", err)
	}

	signedPath := filepath.Join(dir, signedFileName)
	err = s.executor.Execute(ctx, func(ctx context.Context) error {
		if rmErr := os.Remove(signedPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return rmErr
		}
		return s.clearSigner.ClearSign(ctx, prepared, signedPath)
	})
	if err != nil {
		return nil, err
	}

	signed, err := os.ReadFile(signedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("signing tool wrote no output: %w", htmlsign.ErrInvalidSignedOutput)
		}
		return nil, fmt.Errorf("failed to read signed output: %w", err)
	}

	output, err := Envelope(signed)
	if err != nil {
		return nil, err
	}
	if err := Verify(content, output); err != nil {
		return nil, err
	}
	return output, nil
}

// SignFile signs input and writes the envelope to output, or back to input
// when output is empty. The returned result is filled in on failure too,
// with Err set.
func (s *Signer) SignFile(ctx context.Context, input, output string) (htmlsign.SignResult, error) {
	start := time.Now()
	if output == "" {
		output = input
	}
	result := htmlsign.SignResult{Source: input, Destination: output}

	fail := func(err error) (htmlsign.SignResult, error) {
		result.Err = err
		result.Duration = time.Since(start)
		return result, err
	}

	info, err := s.fsProvider.Stat(input)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return fail(fmt.Errorf("%s: %w", input, htmlsign.ErrInputNotFound))
		}
		return fail(fmt.Errorf("failed to stat %s: %w", input, err))
	}
	if info.IsDir() {
		return fail(fmt.Errorf("%s is a directory: %w", input, htmlsign.ErrInvalidConfig))
	}

	content, err := s.fsProvider.ReadFile(input)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s: %w", input, err))
	}
	result.Checksum = s.checksum.Calculate(content)

	if s.cfg.SkipSigned && IsSigned(content) {
		s.logger.Verbose("Skipping %s: already signed", input)
		result.Skipped = true
		result.SkipReason = "already signed"
		result.Duration = time.Since(start)
		return result, nil
	}

	signed, err := s.Sign(ctx, content)
	if err != nil {
		return fail(fmt.Errorf("%s: %w", input, err))
	}

	perm := newFilePerm
	if samePath(input, output) {
		perm = info.Mode().Perm()
	}
	if err := s.fsProvider.WriteFile(output, signed, perm); err != nil {
		return fail(fmt.Errorf("%s: %w: %w", output, htmlsign.ErrWriteFailed, err))
	}

	result.SignedChecksum = s.checksum.Calculate(signed)
	result.Duration = time.Since(start)
	s.logger.Verbose("Signed %s -> %s (%s)", input, output, result.SignedChecksum)
	return result, nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
