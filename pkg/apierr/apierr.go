// Package apierr is the error taxonomy every handler speaks. Failures are
// classified once, where they are first detected, and carried unchanged to
// the HTTP layer which turns the Kind into a status code and body.
package apierr

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	validation "github.com/jellydator/validation"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unprocessable_entity"
	default:
		return "internal"
	}
}

// Error is a classified failure. Fields is only populated for
// KindUnprocessable; Err carries the underlying cause for server-side logs.
type Error struct {
	Kind   Kind
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%q", k, e.Fields[k])
		}
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthorized() *Error { return &Error{Kind: KindUnauthorized} }
func Forbidden() *Error    { return &Error{Kind: KindForbidden} }
func NotFound() *Error     { return &Error{Kind: KindNotFound} }

// Unprocessable builds a field-scoped validation error, e.g.
// Unprocessable("username", "username taken").
func Unprocessable(field string, messages ...string) *Error {
	return &Error{
		Kind:   KindUnprocessable,
		Fields: map[string][]string{field: messages},
	}
}

// UnprocessableFields is Unprocessable for several fields at once.
func UnprocessableFields(fields map[string][]string) *Error {
	return &Error{Kind: KindUnprocessable, Fields: maps.Clone(fields)}
}

// Internal wraps an unexpected failure. Already classified errors are
// returned as they are.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindInternal, Err: err}
}

// Internalf is Internal with a formatted context message.
func Internalf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindInternal, Err: fmt.Errorf(format+": %w", append(args, err)...)}
}

// WithCause attaches a cause for logging without changing the classification.
func (e *Error) WithCause(err error) *Error {
	out := *e
	out.Err = err
	return &out
}

// KindOf reports the classification of err. Anything unclassified is internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// FieldsOf returns the field messages of an unprocessable error.
func FieldsOf(err error) map[string][]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}

// FromValidation converts a jellydator/validation result into an
// unprocessable error keyed by the offending json field names.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return Internal(err)
		}
		return Unprocessable("body", err.Error())
	}

	fields := make(map[string][]string, len(verrs))
	flattenValidation("", verrs, fields)
	return &Error{Kind: KindUnprocessable, Fields: fields}
}

func flattenValidation(prefix string, verrs validation.Errors, out map[string][]string) {
	for field, err := range verrs {
		if err == nil {
			continue
		}
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flattenValidation(key, nested, out)
			continue
		}
		out[key] = append(out[key], err.Error())
	}
}
