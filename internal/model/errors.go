package model

import "errors"

var (
	// ErrNotFound reports a function or type that cannot be resolved even
	// after suffix matching.
	ErrNotFound = errors.New("not found")

	// ErrMalformedKey reports a qualified name without a file prefix. It
	// indicates an internal invariant violation, not bad user input.
	ErrMalformedKey = errors.New("malformed qualified name")
)
