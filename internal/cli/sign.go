package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/internal/logging"
	"github.com/vvka-141/htmlsign/internal/signer"
	"github.com/vvka-141/htmlsign/internal/tui"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

type signOptions struct {
	input   string
	output  string
	signing signingFlags
}

func newSignCommand() *cobra.Command {
	opts := &signOptions{}

	cmd := &cobra.Command{
		Use:   "sign --input <file> [--output <file>]",
		Short: "Clear-sign a single HTML file",
		Long: `Clear-sign one HTML file and embed the signature in an HTML comment.

Without --output the input file is replaced by its signed copy.

Settings are read from htmlsign.yaml next to the input file when present;
flags given on the command line take precedence.`,
		Example: `  # Sign in place with the default key
  htmlsign sign --input index.html

  # Write the signed copy elsewhere, using a specific key
  htmlsign sign --input index.html --output dist/index.html -u releases@example.com

  # Use an isolated keyring
  htmlsign sign --input index.html --homedir /secure/gnupg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "HTML file to sign (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Destination of the signed file (default: overwrite the input)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.RegisterFlagCompletionFunc("input", completeHTMLFiles)
	_ = cmd.RegisterFlagCompletionFunc("output", completeHTMLFiles)
	addSigningFlags(cmd, &opts.signing)

	return cmd
}

func runSign(cmd *cobra.Command, opts *signOptions) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerWithWriter(cmd.ErrOrStderr(), verbose)

	projectCfg, err := loadProjectConfig(filepath.Dir(opts.input), logger)
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

	s, err := signer.NewGPG(signerCfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(cmd.Context(), timeout, "signing")
	defer cancel()

	result, err := s.SignFile(ctx, opts.input, opts.output)
	tui.NewStatusPrinter(cmd.OutOrStdout(), tui.IsInteractive()).Result(result)
	if err != nil {
		return fmt.Errorf("signing %s failed: %w", opts.input, err)
	}
	return nil
}

var _ htmlsign.FileSigner = (*signer.Signer)(nil)
