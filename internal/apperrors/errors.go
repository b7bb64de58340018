package apperrors

import (
	"errors"
)

var (
	// ErrNoSession is returned when the store holds no authenticated session
	ErrNoSession = errors.New("no session stored")

	// ErrStorageFailure wraps failures of the persistence substrate itself
	// (unwritable directory, corrupted record). The session state is
	// indeterminate after it and must not be silently swallowed.
	ErrStorageFailure = errors.New("session storage failure")

	// ErrIncompleteSession is returned when a commit would persist a
	// partially populated session record
	ErrIncompleteSession = errors.New("session record incomplete")

	ErrUnknownRole = errors.New("unknown role tag")
	ErrUnknownView = errors.New("unknown view")
)
