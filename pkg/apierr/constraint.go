package apierr

import "errors"

// WriteErrorKind classifies a failed store mutation.
type WriteErrorKind int

const (
	WriteOther WriteErrorKind = iota
	WriteConflict
)

// WriteError is what a store reports about a failed write. Constraint is
// only set for WriteConflict and holds the violated constraint's name.
type WriteError struct {
	Kind       WriteErrorKind
	Constraint string
}

// Conflict is a convenience constructor for drivers.
func Conflict(constraint string) WriteError {
	return WriteError{Kind: WriteConflict, Constraint: constraint}
}

// WriteErrorClassifier is implemented by stores. Drivers decide from their
// own typed errors which named constraint was violated, never from free text.
type WriteErrorClassifier interface {
	ClassifyWriteError(err error) WriteError
}

// OnConstraint intercepts a store write error. If err is a conflict on
// exactly the named constraint, mapped is returned with err attached as its
// cause. Errors that are already classified pass through untouched. Anything
// else is internal.
func OnConstraint(err error, c WriteErrorClassifier, constraint string, mapped *Error) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return err
	}

	if we := c.ClassifyWriteError(err); we.Kind == WriteConflict && we.Constraint == constraint {
		return mapped.WithCause(err)
	}
	return Internal(err)
}

// ConstraintMapping pairs a constraint name with its user-facing error.
type ConstraintMapping struct {
	Constraint string
	Err        *Error
}

// OnConstraints is OnConstraint for writes that can trip several constraints.
func OnConstraints(err error, c WriteErrorClassifier, mappings ...ConstraintMapping) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return err
	}

	we := c.ClassifyWriteError(err)
	if we.Kind == WriteConflict {
		for _, m := range mappings {
			if m.Constraint == we.Constraint {
				return m.Err.WithCause(err)
			}
		}
	}
	return Internal(err)
}
