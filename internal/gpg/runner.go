package gpg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// waitDelay bounds how long Run waits for stray children holding stderr
// after the tool was killed on cancellation.
const waitDelay = 2 * time.Second

// Command is one invocation of the signing tool.
type Command struct {
	Binary string
	Args   []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Env holds KEY=VALUE pairs appended to the inherited environment
	Env []string
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Binary}, c.Args...), " ")
}

// Runner executes signing tool commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a signing tool run that ended with a non-zero status.
type ExitError struct {
	Binary string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Binary, e.Code, e.Stderr)
}

// Unwrap lets errors.Is match htmlsign.ErrSigningFailed.
func (e *ExitError) Unwrap() error {
	return htmlsign.ErrSigningFailed
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner that executes real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts c, waits for it and classifies the failure, if any.
// The tool gets no stdin; its stdout is discarded and stderr is captured
// for the error message.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Binary, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", c.Binary, ctxErr)
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", c.Binary, htmlsign.ErrSignerNotFound)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Binary: c.Binary,
			Code:   exitErr.ExitCode(),
			Stderr: preview(stderr.String()),
		}
	}

	return fmt.Errorf("running %s: %w: %v", c.Binary, htmlsign.ErrSigningFailed, err)
}

// preview trims s and caps it at htmlsign.MaxErrorPreviewLength bytes.
func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > htmlsign.MaxErrorPreviewLength {
		return s[:htmlsign.MaxErrorPreviewLength] + "..."
	}
	return s
}

var _ Runner = (*ExecRunner)(nil)
