// Package gpg invokes GnuPG to clear-sign prepared files.
//
// Nothing here performs cryptography. ClearSigner builds the gpg argument
// list and hands it to a Runner; ExecRunner runs the binary through os/exec
// and turns its failures into htmlsign sentinel errors:
//
//   - binary missing: htmlsign.ErrSignerNotFound
//   - non-zero exit: *ExitError, which unwraps to htmlsign.ErrSigningFailed
//   - context cancelled or timed out: the context error
//
// Tests substitute a Runner that records commands instead of running them.
package gpg
