package extraction

import "fmt"

// APICallError represents a failure of the underlying model call.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a model response that could not be parsed into the
// listings schema. No partial extraction is accepted.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
