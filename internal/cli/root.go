package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const rootLong = `htmlsign clear-signs HTML files with GnuPG and embeds the signature
in an HTML comment, so the page still renders unchanged while the file as a
whole remains a verifiable clear-signed message.

Signing is done by the external gpg binary; htmlsign never touches key
material itself.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Signing tool (gpg) not found
  12 - User denied in-place overwrite
  13 - Signing failed or produced invalid output
  14 - Input file or directory not found
  15 - Batch finished with failed files`

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "htmlsign",
		Short:        "Clear-sign HTML files with gpg",
		Long:         rootLong,
		SilenceUsage: true,
	}

	root.PersistentFlags().Bool("help", false, "Help for htmlsign")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	root.AddCommand(newSignCommand(), newSignAllCommand(), newVersionCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return newRootCommand().Execute()
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
