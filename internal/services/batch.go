package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
	"gopkg.in/yaml.v3"
)

// Reporter receives per-file progress.
type Reporter interface {
	Result(r htmlsign.SignResult)
	DryRun(path string)
	Summary(b htmlsign.BatchResult)
}

// BatchService implements the BatchSigner interface.
// Thread-Safety: NOT safe for concurrent SignTree() calls on the same instance.
type BatchService struct {
	walker     htmlsign.FileWalker
	signer     htmlsign.FileSigner
	approver   htmlsign.Approver
	logger     htmlsign.Logger
	reporter   Reporter
	fsProvider filesystem.FileSystemProvider
	now        func() time.Time
}

// NewBatchService creates a new BatchService with all dependencies injected.
// Panics on nil dependencies.
func NewBatchService(
	walker htmlsign.FileWalker,
	signer htmlsign.FileSigner,
	approver htmlsign.Approver,
	logger htmlsign.Logger,
	reporter Reporter,
) *BatchService {
	if walker == nil {
		panic("walker cannot be nil")
	}
	if signer == nil {
		panic("signer cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}

	return &BatchService{
		walker:     walker,
		signer:     signer,
		approver:   approver,
		logger:     logger,
		reporter:   reporter,
		fsProvider: filesystem.NewOSFileSystem(),
		now:        time.Now,
	}
}

// SignTree signs every matching file under config.Root in place.
func (s *BatchService) SignTree(ctx context.Context, config htmlsign.BatchConfig) (result htmlsign.BatchResult, err error) {
	if err := config.Validate(); err != nil {
		return htmlsign.BatchResult{}, err
	}

	start := s.now()
	result = htmlsign.BatchResult{
		RunID:  uuid.NewString(),
		Root:   config.Root,
		DryRun: config.DryRun,
	}
	s.logger.Verbose("Run %s: signing %v files under %s", result.RunID, config.Extensions, config.Root)

	walked, err := s.walker.Walk(config.Root, config.Extensions)
	if err != nil {
		return result, fmt.Errorf("failed to scan %s: %w", config.Root, err)
	}
	for path, walkErr := range walked.Skipped {
		s.logger.Error("Skipping %s: %v", path, walkErr)
	}

	if len(walked.Files) == 0 {
		s.logger.Info("No matching files under %s", config.Root)
		result.Duration = s.now().Sub(start)
		return result, s.writeReport(config.ReportPath, result)
	}

	defer func() {
		result.Duration = s.now().Sub(start)
		s.reporter.Summary(result)
		if reportErr := s.writeReport(config.ReportPath, result); reportErr != nil && err == nil {
			err = reportErr
		}
	}()

	if config.DryRun {
		for _, path := range walked.Files {
			s.reporter.DryRun(path)
			result.Files = append(result.Files, htmlsign.SignResult{Source: path, Destination: path})
		}
		return result, nil
	}

	approved, err := s.approver.RequestApproval(ctx, config.Root, len(walked.Files))
	if err != nil {
		return result, fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return result, fmt.Errorf("signing %s in place: %w", config.Root, htmlsign.ErrApprovalDenied)
	}
	if config.Force {
		s.logger.Verbose("In-place signing of %s approved with --force", config.Root)
	}

	for i, path := range walked.Files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("stopped after %d of %d file(s): %w", i, len(walked.Files), ctxErr)
		}

		s.logger.Verbose("Signing %s", path)
		fileResult, signErr := s.signer.SignFile(ctx, path, "")
		if signErr != nil {
			fileResult.Err = signErr
			s.logger.Verbose("Failed to sign %s: %v", path, signErr)
		}
		result.Add(fileResult)
		s.reporter.Result(result.Files[len(result.Files)-1])
	}

	return result, result.Err()
}

// writeReport stores result as YAML at path. Empty path is a no-op.
func (s *BatchService) writeReport(path string, result htmlsign.BatchResult) error {
	if path == "" {
		return nil
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.fsProvider.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	s.logger.Verbose("Report written to %s", path)
	return nil
}

var _ htmlsign.BatchSigner = (*BatchService)(nil)
