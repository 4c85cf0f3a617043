// Package errors provides structured error types for template parsing
// and resolution.
//
// Errors are classified by Kind: syntax errors are deterministic from the
// template shape alone and abort the parse; type errors depend on runtime
// interpolation values and abort the resolve. Errors raised inside user
// components or by value formatting are never wrapped here - they
// propagate to the caller unchanged.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind categorizes template engine errors.
type Kind string

const (
	// KindSyntax marks parse-time errors determined by template shape.
	KindSyntax Kind = "syntax"
	// KindType marks resolve-time errors determined by runtime values.
	KindType Kind = "type"
	// KindInternal marks engine invariant violations.
	KindInternal Kind = "internal"
)

// Error is a structured template engine error with an optional template
// position. Chunk is the index of the static chunk the error was detected
// in and Offset the byte offset within that chunk; both are -1 when the
// error has no meaningful position.
type Error struct {
	Kind   Kind
	Code   string
	Msg    string
	Chunk  int
	Offset int
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	if e.Chunk >= 0 {
		parts = append(parts, fmt.Sprintf("chunk %d, offset %d:", e.Chunk, e.Offset))
	}
	parts = append(parts, e.Msg)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by kind and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if stderrors.As(target, &t) {
		if t.Code != "" && t.Code != e.Code {
			return false
		}
		return t.Kind == e.Kind
	}
	return false
}

// WithPosition returns a copy of the error carrying a template position.
func (e *Error) WithPosition(chunk, offset int) *Error {
	clone := *e
	clone.Chunk = chunk
	clone.Offset = offset
	return &clone
}

// Syntaxf creates a parse-time error.
func Syntaxf(code, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   KindSyntax,
		Code:   code,
		Msg:    fmt.Sprintf(format, args...),
		Chunk:  -1,
		Offset: -1,
	}
}

// Typef creates a resolve-time error.
func Typef(code, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   KindType,
		Code:   code,
		Msg:    fmt.Sprintf(format, args...),
		Chunk:  -1,
		Offset: -1,
	}
}

// Internalf creates an engine invariant violation error.
func Internalf(code, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   KindInternal,
		Code:   code,
		Msg:    fmt.Sprintf(format, args...),
		Chunk:  -1,
		Offset: -1,
	}
}

// IsSyntax reports whether err is a parse-time template error.
func IsSyntax(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindSyntax
}

// IsType reports whether err is a resolve-time type error.
func IsType(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindType
}
