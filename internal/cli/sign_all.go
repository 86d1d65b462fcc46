package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/internal/files/walker"
	"github.com/vvka-141/htmlsign/internal/logging"
	"github.com/vvka-141/htmlsign/internal/services"
	"github.com/vvka-141/htmlsign/internal/signer"
	"github.com/vvka-141/htmlsign/internal/tui"
	"github.com/vvka-141/htmlsign/internal/ui"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// newForcedApprover builds the --force approver. Tests swap it to skip the countdown.
var newForcedApprover = ui.NewForcedApprover

type signAllOptions struct {
	extensions    []string
	force         bool
	dryRun        bool
	report        string
	includeHidden bool
	signing       signingFlags
}

func newSignAllCommand() *cobra.Command {
	opts := &signAllOptions{}

	cmd := &cobra.Command{
		Use:   "sign-all <directory>",
		Short: "Clear-sign every HTML file under a directory, in place",
		Long: `Walk a directory tree and clear-sign every matching file in place.

Each file is signed on its own; a failure is reported and the run moves on
to the next file. The exit code is 15 when at least one file failed.

Files that already carry a signature envelope are skipped unless
--no-skip-signed is given. Hidden files and directories are skipped unless
--include-hidden is given.

Because files are rewritten in place, htmlsign asks you to confirm by typing
the directory name. --force replaces the prompt with a short countdown, which
is also the only way to run in a non-interactive session.`,
		Example: `  # Preview what would be signed
  htmlsign sign-all ./public --dry-run

  # Sign .html and .htm files without a prompt and keep a report
  htmlsign sign-all ./public --ext .html --ext .htm --force --report signing.yaml`,
		Args:              RequireDirectory,
		ValidArgsFunction: completeDirectories,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignAll(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.extensions, "ext", []string{htmlsign.DefaultExtension},
		"File extension to sign (repeatable, case-insensitive)")
	cmd.Flags().BoolVar(&opts.force, "force", false,
		"Skip the confirmation prompt (a countdown is shown instead)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"List the files that would be signed without touching them")
	cmd.Flags().StringVar(&opts.report, "report", "",
		"Write a YAML report of the run to this path")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false,
		"Also sign files in hidden directories and hidden files")
	addSigningFlags(cmd, &opts.signing)

	return cmd
}

func runSignAll(cmd *cobra.Command, root string, opts *signAllOptions) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerWithWriter(cmd.ErrOrStderr(), verbose)
	interactive := tui.IsInteractive()

	projectCfg, err := loadProjectConfig(root, logger)
	if err != nil {
		return err
	}

	signerCfg, err := buildSignerConfig(cmd, &opts.signing, projectCfg, filesystem.NewOSFileSystem(), logger)
	if err != nil {
		return err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, opts.signing.timeout)
	if err != nil {
		return err
	}

	extensions := opts.extensions
	if projectCfg != nil && len(projectCfg.Extensions) > 0 && !cmd.Flags().Changed("ext") {
		extensions = projectCfg.Extensions
	}

	batchCfg := htmlsign.BatchConfig{
		Root:       root,
		Extensions: extensions,
		DryRun:     opts.dryRun,
		Force:      opts.force,
		Timeout:    timeout,
		ReportPath: opts.report,
	}

	// Select approver implementation based on --force flag
	var approver htmlsign.Approver
	switch {
	case opts.force:
		approver = newForcedApprover(verbose)
	case interactive || opts.dryRun:
		approver = ui.NewInteractiveApprover(verbose)
	default:
		return fmt.Errorf("refusing to rewrite files under %s without confirmation in a non-interactive session, use --force or --dry-run: %w",
			root, htmlsign.ErrApprovalDenied)
	}

	s, err := signer.NewGPG(signerCfg, logger)
	if err != nil {
		return err
	}

	svc := services.NewBatchService(
		walker.NewWalker(walker.WithHidden(opts.includeHidden)),
		s,
		approver,
		logger,
		tui.NewStatusPrinter(cmd.OutOrStdout(), interactive),
	)

	ctx, cancel := newRunContext(cmd.Context(), batchCfg.Timeout, "batch signing")
	defer cancel()

	if _, err := svc.SignTree(ctx, batchCfg); err != nil {
		return fmt.Errorf("sign-all failed: %w", err)
	}
	return nil
}
