package framer

import "errors"

var (
	// Registration errors.
	ErrCapacityExceeded = errors.New("framer: registry capacity exceeded")
	ErrInvalidLength    = errors.New("framer: invalid payload length")
	ErrDuplicateID      = errors.New("framer: duplicate message id")
	ErrNilCodec         = errors.New("framer: codec is nil")

	// Construction errors.
	ErrNilTransport = errors.New("framer: transport is nil")

	// Transfer errors.
	ErrEncode = errors.New("framer: encoder failed")
	ErrWrite  = errors.New("framer: transport write failed")
	ErrRead   = errors.New("framer: transport read failed")
)
