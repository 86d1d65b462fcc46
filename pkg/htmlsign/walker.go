package htmlsign

// FileWalker discovers files to sign.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileWalker interface {
	// Walk recursively scans root and returns the files whose extension
	// matches one of extensions.
	Walk(root string, extensions []string) (WalkResult, error)
}

// WalkResult contains the results of walking a directory.
type WalkResult struct {
	// Files holds absolute paths of matching files in walk order.
	Files []string

	// Skipped holds paths that could not be visited, with the reason.
	Skipped map[string]error
}
