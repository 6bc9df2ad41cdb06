package model

import "fmt"

// CoercionError represents a failure to coerce an untrusted extracted
// field into a typed value
type CoercionError struct {
	Field   string
	Value   string
	Message string
	Cause   error
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot coerce %s=%q: %s (%v)", e.Field, e.Value, e.Message, e.Cause)
	}
	return fmt.Sprintf("cannot coerce %s=%q: %s", e.Field, e.Value, e.Message)
}

func (e *CoercionError) Unwrap() error {
	return e.Cause
}

// NewCoercionError creates a new coercion error
func NewCoercionError(field, value, message string, cause error) *CoercionError {
	return &CoercionError{
		Field:   field,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents a schema validation failure reported by
// the external XSD validator. Diagnostic holds the combined
// stdout/stderr text of the validator run.
type ValidationError struct {
	Profile    Profile
	Diagnostic string
}

func (e *ValidationError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("schema validation failed [%s]: %s", e.Profile, e.Diagnostic)
	}
	return fmt.Sprintf("schema validation failed [%s]", e.Profile)
}

// NewValidationError creates a new validation error
func NewValidationError(profile Profile, diagnostic string) *ValidationError {
	return &ValidationError{Profile: profile, Diagnostic: diagnostic}
}

// ExtractionError represents extraction failures
type ExtractionError struct {
	Method  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed [%s]: %s (%v)", e.Method, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed [%s]: %s", e.Method, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error
func NewExtractionError(method, message string, cause error) *ExtractionError {
	return &ExtractionError{
		Method:  method,
		Message: message,
		Cause:   cause,
	}
}

// EmbedError represents a failure while embedding the XML payload
// into the PDF container
type EmbedError struct {
	Message string
	Cause   error
}

func (e *EmbedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}

// NewEmbedError creates a new embed error
func NewEmbedError(message string, cause error) *EmbedError {
	return &EmbedError{Message: message, Cause: cause}
}
