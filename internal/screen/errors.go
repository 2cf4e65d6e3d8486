package screen

import "fmt"

// ErrorType represents the category of a screen error
type ErrorType int

const (
	// ErrTypeParse indicates malformed YAML or unknown keys
	ErrTypeParse ErrorType = iota
	// ErrTypeValidation indicates a field value out of range
	ErrTypeValidation
	// ErrTypeGeometry indicates a widget that does not fit the display
	ErrTypeGeometry
	// ErrTypeReference indicates a name that does not resolve
	ErrTypeReference
	// ErrTypeBuild indicates a failure while creating widgets
	ErrTypeBuild
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeGeometry:
		return "Geometry Error"
	case ErrTypeReference:
		return "Reference Error"
	case ErrTypeBuild:
		return "Build Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ScreenError is an error found in a screen definition
type ScreenError struct {
	Type    ErrorType // Category of error
	Widget  string    // Widget name, empty for screen-level problems
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

func (e *ScreenError) Error() string {
	prefix := e.Type.String()
	if e.Widget != "" {
		prefix = fmt.Sprintf("%s in %q", prefix, e.Widget)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ScreenError) Unwrap() error {
	return e.Err
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *ScreenError {
	return &ScreenError{Type: ErrTypeParse, Message: message, Err: err}
}

// NewValidationError creates a validation error for a widget
func NewValidationError(widget, message string) *ScreenError {
	return &ScreenError{Type: ErrTypeValidation, Widget: widget, Message: message}
}

// NewGeometryError creates a geometry error for a widget
func NewGeometryError(widget, message string) *ScreenError {
	return &ScreenError{Type: ErrTypeGeometry, Widget: widget, Message: message}
}

// NewReferenceError creates an unresolved reference error for a widget
func NewReferenceError(widget, message string) *ScreenError {
	return &ScreenError{Type: ErrTypeReference, Widget: widget, Message: message}
}

// NewBuildError creates a build error for a widget
func NewBuildError(widget string, err error) *ScreenError {
	return &ScreenError{Type: ErrTypeBuild, Widget: widget, Message: "cannot create widget", Err: err}
}

func hasType(err error, types ...ErrorType) bool {
	se, ok := err.(*ScreenError)
	if !ok {
		return false
	}
	for _, t := range types {
		if se.Type == t {
			return true
		}
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool { return hasType(err, ErrTypeParse) }

// IsValidationError checks if an error came from validation, including
// geometry and reference problems
func IsValidationError(err error) bool {
	return hasType(err, ErrTypeValidation, ErrTypeGeometry, ErrTypeReference)
}

// IsGeometryError checks if an error is a geometry error
func IsGeometryError(err error) bool { return hasType(err, ErrTypeGeometry) }

// IsReferenceError checks if an error is a reference error
func IsReferenceError(err error) bool { return hasType(err, ErrTypeReference) }

// IsBuildError checks if an error is a build error
func IsBuildError(err error) bool { return hasType(err, ErrTypeBuild) }

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	se, ok := err.(*ScreenError)
	if !ok {
		return err.Error()
	}
	switch se.Type {
	case ErrTypeParse:
		return "Failed to parse screen file"
	case ErrTypeBuild:
		return fmt.Sprintf("Cannot create widget %q", se.Widget)
	default:
		if se.Widget == "" {
			return se.Message
		}
		return fmt.Sprintf("%s: %s", se.Widget, se.Message)
	}
}
