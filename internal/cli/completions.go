package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// digestAlgos lists gpg --digest-algo values offered for shell completion.
var digestAlgos = []string{"SHA256", "SHA384", "SHA512", "SHA224"}

// completeDigestAlgos provides shell completion for --digest-algo.
func completeDigestAlgos(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, algo := range digestAlgos {
		if strings.HasPrefix(algo, strings.ToUpper(toComplete)) {
			matches = append(matches, algo)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeHTMLFiles restricts file completion to HTML documents.
func completeHTMLFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"html", "htm"}, cobra.ShellCompDirectiveFilterFileExt
}
