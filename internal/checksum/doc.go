// Package checksum provides content hashing for signing reports.
//
// Every signed file is recorded with two digests: the digest of the page as
// it was read, and the digest of the envelope written back. Together they
// let a later run tell whether a page changed after it was signed.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest := calculator.Calculate(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
