// Package walker discovers the files a batch run signs.
//
// The walker recursively enumerates files under a root directory whose
// extension matches a filter (".html" by default). Hidden entries below the
// root are skipped, the way a recursive "**/*.html" glob skips them.
// Entries that cannot be visited are reported in the result instead of
// aborting the walk.
//
// The walker is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling both production use with the OS filesystem and testing with
// in-memory filesystems.
package walker
