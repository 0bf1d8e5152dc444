// Package cache provides a content-digest-keyed store for scan results with
// a fast bounded in-memory tier and a slower persistent file tier.
package cache

import "fmt"

// StoreError represents a failure reading or writing the persistent tier.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
