package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the name of the
// directory whose files are about to be rewritten.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover.
func NewInteractiveApprover(verbose bool) htmlsign.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval prompts the user to type the directory name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string, fileCount int) (bool, error) {
	name := filepath.Base(filepath.Clean(target))

	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to sign %d file(s) under '%s' IN PLACE\n", fileCount, target)
	fmt.Fprintln(a.output, "The original files will be replaced by their signed copies.")
	fmt.Fprintf(a.output, "\nTo confirm, type the directory name '%s' and press Enter: ", name)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case line := <-inputChan:
		if line == name {
			fmt.Fprintln(a.output, "✓ Confirmed. Proceeding with in-place signing...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match directory name '%s'. Operation cancelled.\n", line, name)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ htmlsign.Approver = (*InteractiveApprover)(nil)
