// Package patch synthesizes corrective edits for front-end source documents
// and renders them as unified diffs.
package patch

import "fmt"

// SynthesisError represents a patch synthesis failure. Structural parse
// failures are not errors (they degrade to the pattern path); this covers
// invalid input and I/O failures when writing patch files.
type SynthesisError struct {
	Message string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("patch synthesis error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("patch synthesis error: %s", e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}
