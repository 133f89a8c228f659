package transport

import (
	"github.com/arloliu/go-msgframe/internal/queue"
)

// Buffer is an in-memory transport. It is not safe for concurrent use.
type Buffer struct {
	in  queue.Queue[byte]
	out []byte
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{in: queue.NewSliceQueue[byte](64)}
}

// Feed queues inbound bytes.
func (b *Buffer) Feed(data ...byte) {
	for _, c := range data {
		b.in.Enqueue(c)
	}
}

// Len returns the number of inbound bytes not yet read.
func (b *Buffer) Len() int { return b.in.Length() }

// Available implements framer.Transport.
func (b *Buffer) Available() bool { return !b.in.IsEmpty() }

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	c, ok := b.in.Dequeue()
	if !ok {
		return 0, ErrNoData
	}

	return c, nil
}

// WriteByte implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.out = append(b.out, c)
	return nil
}

// Written returns a copy of every byte written so far.
func (b *Buffer) Written() []byte {
	out := make([]byte, len(b.out))
	copy(out, b.out)

	return out
}

// TakeWritten returns the written bytes and clears the output.
func (b *Buffer) TakeWritten() []byte {
	out := b.out
	b.out = nil

	return out
}
