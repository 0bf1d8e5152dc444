// Package scanner orchestrates document scans: content read, cache lookup,
// detection, classification, and cache store.
package scanner

// ScanError describes a failure while reading or scanning a document.
type ScanError struct {
	Message string
	Cause   error
}

func (e *ScanError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}
