package store

import (
	"errors"
	"fmt"
)

// ErrNotExist is returned by a Backend when nothing has been stored yet.
// The Store treats it as an empty marketplace, not as a failure.
var ErrNotExist = errors.New("document does not exist")

// ErrMalformed matches every *ParseError via errors.Is.
var ErrMalformed = errors.New("malformed marketplace document")

// ErrWrite wraps every failure to persist the document. Callers must not
// assume the write happened.
var ErrWrite = errors.New("marketplace document write failed")

// ParseError reports stored content that exists but cannot be decoded. The
// store never resets such content; an operator has to repair or move it.
type ParseError struct {
	Location string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s: %v (repair or move the stored document aside before restarting)",
		ErrMalformed, e.Location, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformed) match.
func (e *ParseError) Is(target error) bool { return target == ErrMalformed }
