// Package retry provides automatic retry logic with exponential backoff
// for transient signing tool failures.
//
// GnuPG talks to gpg-agent over a socket; when several signing runs start
// at once, or the agent is still starting, the first invocation can fail
// with an agent or lock error that a second attempt does not hit.
//
// # Example Usage
//
//	classifier := retry.NewSigningErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return clearSigner.ClearSign(ctx, prepared, signed)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
