package htmlsign

import "context"

// Approver handles user interaction before files are overwritten in place.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the directory name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before signing every matching
	// file under target in place.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - target: Directory whose files will be rewritten
	//   - fileCount: Number of files that will be rewritten
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string, fileCount int) (bool, error)
}
