// Package services orchestrates batch signing.
//
// BatchService ties the walker, the approver and the signer together:
//
//  1. walk the root for matching files
//  2. ask for approval once, since every file is rewritten in place
//  3. sign the files one at a time, recording each outcome
//  4. print a summary and optionally write a YAML report
//
// A file that fails to sign is recorded and the run moves on to the next
// one. Cancellation is checked between files.
package services
