package store

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord matches any line that could not be decoded.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError describes a single undecodable line in a store.
type RecordError struct {
	Path string
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record at %s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
