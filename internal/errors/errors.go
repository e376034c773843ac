// Package errors classifies synthgen failures. Config and I/O problems abort
// a run and reach the CLI as *Error values; everything the engine can recover
// from is reduced to an advisory with Advisory.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

type ErrorType string

const (
	// Fatal for a generation run.
	ErrTypeConfig ErrorType = "config"

	// Recovered locally and surfaced as advisories.
	ErrTypeConstraint  ErrorType = "constraint"
	ErrTypeEdgeValue   ErrorType = "edge_value"
	ErrTypeDependency  ErrorType = "dependency"
	ErrTypeUnknownType ErrorType = "unknown_type"
	ErrTypeSensitive   ErrorType = "sensitive_field"

	// I/O around the engine.
	ErrTypeSchemaFile ErrorType = "schema_file"
	ErrTypeExport     ErrorType = "export"
	ErrTypeDatabase   ErrorType = "database"
	ErrTypeInternal   ErrorType = "internal"
)

// Error is a classified failure. Suggestions are hints printed under the
// error by the CLI.
type Error struct {
	Type        ErrorType
	Message     string
	Cause       error
	Suggestions []string
}

// Error renders "type: message" followed by ": cause" when wrapped.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithSuggestion(hints ...string) *Error {
	e.Suggestions = append(e.Suggestions, hints...)
	return e
}

func New(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

func Newf(t ErrorType, format string, args ...any) *Error {
	return New(t, fmt.Sprintf(format, args...))
}

func Wrap(cause error, t ErrorType, message string) *Error {
	e := New(t, message)
	e.Cause = cause
	return e
}

func Wrapf(cause error, t ErrorType, format string, args ...any) *Error {
	return Wrap(cause, t, fmt.Sprintf(format, args...))
}

// As finds the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if !stderrors.As(err, &e) {
		return nil, false
	}
	return e, true
}

func IsType(err error, t ErrorType) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// GetType classifies err; anything unclassified is internal.
func GetType(err error) ErrorType {
	if e, ok := As(err); ok {
		return e.Type
	}
	return ErrTypeInternal
}

// Suggestions gathers the hints of every *Error in err's chain, outermost
// first, so wrapping with fmt.Errorf("...: %w") keeps them.
func Suggestions(err error) []string {
	var out []string
	for err != nil {
		if e, ok := err.(*Error); ok {
			out = append(out, e.Suggestions...)
		}
		err = stderrors.Unwrap(err)
	}
	return out
}

// Advisory reduces a recovered error to the kind and message of an advisory.
// The message is the classified one, without the "type:" prefix or cause.
func Advisory(err error) (ErrorType, string) {
	if e, ok := As(err); ok {
		return e.Type, e.Message
	}
	return ErrTypeInternal, err.Error()
}

// NewConfigError reports a schema-level problem, naming the table when known.
func NewConfigError(message, table string) *Error {
	if table != "" {
		message = fmt.Sprintf("%s (table: %s)", message, table)
	}
	return New(ErrTypeConfig, message).WithSuggestion(
		"Check the relationships section of your schema",
		"Run 'synthgen validate' to inspect the generation order",
	)
}
