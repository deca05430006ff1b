package glbridge

import "errors"

// Package errors for the translation shim.
var (
	// ErrNilBackend is returned when constructing a Shim without a backend.
	ErrNilBackend = errors.New("glbridge: backend is nil")

	// ErrInvalidDimensions is returned when a texture allocation has a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("glbridge: invalid texture dimensions")

	// ErrInvalidSize is returned when a buffer allocation has a
	// non-positive byte size.
	ErrInvalidSize = errors.New("glbridge: invalid buffer size")

	// ErrUnknownHandle is returned when an allocation call names a handle
	// of the wrong kind for the operation.
	ErrUnknownHandle = errors.New("glbridge: handle has wrong kind for operation")
)
