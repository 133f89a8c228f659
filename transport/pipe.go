package transport

import (
	"sync/atomic"

	"github.com/arloliu/go-msgframe/internal/queue"
)

// PipeEnd is one end of an in-memory pipe created by NewPipe.
//
// Each end may be used from its own goroutine; a single end must not be
// shared between goroutines.
type PipeEnd struct {
	in     queue.Queue[byte]
	out    queue.Queue[byte]
	closed *atomic.Bool
}

// NewPipe creates two connected ends: bytes written to one become available
// on the other.
func NewPipe() (*PipeEnd, *PipeEnd) {
	ab := queue.NewLockFreeQueue[byte]()
	ba := queue.NewLockFreeQueue[byte]()
	closed := &atomic.Bool{}

	return &PipeEnd{in: ba, out: ab, closed: closed},
		&PipeEnd{in: ab, out: ba, closed: closed}
}

// Available implements framer.Transport.
func (p *PipeEnd) Available() bool { return !p.in.IsEmpty() }

// Buffered returns the number of bytes waiting to be read.
func (p *PipeEnd) Buffered() int { return p.in.Length() }

// ReadByte implements io.ByteReader. Bytes already in flight remain
// readable after Close.
func (p *PipeEnd) ReadByte() (byte, error) {
	c, ok := p.in.Dequeue()
	if !ok {
		return 0, ErrNoData
	}

	return c, nil
}

// WriteByte implements io.ByteWriter.
func (p *PipeEnd) WriteByte(c byte) error {
	if p.closed.Load() {
		return ErrClosed
	}
	p.out.Enqueue(c)

	return nil
}

// Write implements io.Writer, e.g. to inject raw bytes toward the peer.
func (p *PipeEnd) Write(data []byte) (int, error) {
	for i, c := range data {
		if err := p.WriteByte(c); err != nil {
			return i, err
		}
	}

	return len(data), nil
}

// Close closes both ends for writing.
func (p *PipeEnd) Close() error {
	p.closed.Store(true)
	return nil
}
