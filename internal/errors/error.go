package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryRender Category = "render"
	CategoryExport Category = "export"
	CategoryCLI    Category = "cli"
)

// Location represents a source or config file location.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// DashError is a structured error with a code, suggestion and documentation link.
type DashError struct {
	// Code is a unique error identifier (e.g., "E120").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file the error refers to, if any.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DashError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DashError) Unwrap() error {
	return e.Wrapped
}

// Is matches another DashError with the same code.
func (e *DashError) Is(target error) bool {
	t, ok := target.(*DashError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithLocation records the file (and optionally line) the error refers to.
func (e *DashError) WithLocation(file string, line int) *DashError {
	e.Location = &Location{File: file, Line: line}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DashError) WithSuggestion(s string) *DashError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *DashError) WithDetail(d string) *DashError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *DashError) Wrap(err error) *DashError {
	e.Wrapped = err
	return e
}

// New creates a DashError from a registered error code.
func New(code string) *DashError {
	template, ok := registry[code]
	if !ok {
		return &DashError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DashError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new DashError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DashError {
	return &DashError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DashError. An error that already
// carries a DashError in its chain is returned unchanged.
func FromError(err error, code string) *DashError {
	if err == nil {
		return nil
	}
	var de *DashError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err carries a DashError with the given code.
func HasCode(err error, code string) bool {
	var de *DashError
	if !stderrors.As(err, &de) {
		return false
	}
	return de.Code == code
}
