package transport

import "errors"

var (
	// ErrNoData is returned by ReadByte when no byte is available.
	ErrNoData = errors.New("transport: no data available")
	// ErrClosed is returned by writes on a closed transport.
	ErrClosed = errors.New("transport: closed")
)
