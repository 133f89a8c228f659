package framer

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// Descriptor describes one registered message of a direction.
type Descriptor[C any] struct {
	// ID identifies the message on the wire. Unique within its registry.
	ID byte
	// Length is the fixed payload length in bytes.
	Length int
	// Codec is an Encoder for outbound messages, a Decoder for inbound ones.
	Codec C
}

// Registry is an append-only, bounded collection of message descriptors
// for one direction. Insertion order is preserved.
type Registry[C any] struct {
	descs    []Descriptor[C]
	index    *xsync.MapOf[byte, int] // id -> position in descs
	maxCount int
	maxLen   int
}

// NewRegistry creates a registry holding at most maxCount messages with
// payloads of at most maxLen bytes.
func NewRegistry[C any](maxCount, maxLen int) *Registry[C] {
	return &Registry[C]{
		descs:    make([]Descriptor[C], 0, maxCount),
		index:    xsync.NewMapOf[byte, int](),
		maxCount: maxCount,
		maxLen:   maxLen,
	}
}

// Register adds a descriptor.
//
// It fails with ErrCapacityExceeded when the registry is full, ErrInvalidLength
// when length is outside [1, MaxLen()], ErrNilCodec when codec is nil and
// ErrDuplicateID when id is already registered. On failure the registry is
// left unchanged.
func (r *Registry[C]) Register(id byte, length int, codec C) error {
	if len(r.descs) >= r.maxCount {
		return fmt.Errorf("%w: %d of %d messages registered, id 0x%02X rejected", ErrCapacityExceeded, len(r.descs), r.maxCount, id)
	}
	if length < 1 || length > r.maxLen {
		return fmt.Errorf("%w: id 0x%02X got %d, want 1-%d", ErrInvalidLength, id, length, r.maxLen)
	}
	if isNilCodec(codec) {
		return fmt.Errorf("%w: id 0x%02X", ErrNilCodec, id)
	}
	if _, loaded := r.index.LoadOrStore(id, len(r.descs)); loaded {
		return fmt.Errorf("%w: 0x%02X", ErrDuplicateID, id)
	}

	r.descs = append(r.descs, Descriptor[C]{ID: id, Length: length, Codec: codec})

	return nil
}

// Lookup returns the descriptor registered for id.
func (r *Registry[C]) Lookup(id byte) (Descriptor[C], bool) {
	pos, ok := r.index.Load(id)
	if !ok {
		return Descriptor[C]{}, false
	}

	return r.descs[pos], true
}

// Descriptors returns a copy of all descriptors in registration order.
func (r *Registry[C]) Descriptors() []Descriptor[C] {
	out := make([]Descriptor[C], len(r.descs))
	copy(out, r.descs)

	return out
}

// Len returns the number of registered messages.
func (r *Registry[C]) Len() int { return len(r.descs) }

// Cap returns the maximum number of messages.
func (r *Registry[C]) Cap() int { return r.maxCount }

// MaxLen returns the maximum payload length.
func (r *Registry[C]) MaxLen() int { return r.maxLen }
