package htmlsign

import "context"

// FileSigner signs one file.
type FileSigner interface {
	// SignFile signs input and writes the result to output, or back to
	// input when output is empty. The result is populated even on failure.
	SignFile(ctx context.Context, input, output string) (SignResult, error)
}

// BatchSigner signs every matching file in a directory tree.
type BatchSigner interface {
	// SignTree walks config.Root and signs each matching file in place.
	// A failure on one file does not stop the run; the returned error then
	// wraps ErrPartialFailure.
	SignTree(ctx context.Context, config BatchConfig) (BatchResult, error)
}
