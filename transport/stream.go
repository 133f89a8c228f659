package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/go-msgframe/internal/queue"
	"github.com/arloliu/go-msgframe/logger"
)

// Default Stream buffer sizes.
const (
	DefaultReadBufferSize  = 256
	DefaultWriteBufferSize = 512
)

// Stream adapts an io.ReadWriter into a framer transport.
//
// A background goroutine reads rw into a lock-free queue so Available and
// ReadByte never block. Writes are buffered until Flush. ReadByte, WriteByte,
// Flush and Close must be called from one goroutine.
type Stream struct {
	rw     io.ReadWriter
	w      *bufio.Writer
	in     queue.Queue[byte]
	logger logger.Logger

	readBufSize int

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	err    error
	closed bool
}

// StreamOption is a functional option for configuring a Stream.
type StreamOption interface {
	apply(*streamConfig) error
}

type streamConfig struct {
	readBufSize  int
	writeBufSize int
	logger       logger.Logger
}

type streamOptFunc func(*streamConfig) error

func (f streamOptFunc) apply(cfg *streamConfig) error { return f(cfg) }

// WithReadBufferSize sets the size of each background Read call.
func WithReadBufferSize(n int) StreamOption {
	return streamOptFunc(func(cfg *streamConfig) error {
		if n < 1 {
			return errors.New("transport: read buffer size must be >= 1")
		}
		cfg.readBufSize = n

		return nil
	})
}

// WithWriteBufferSize sets the size of the write buffer.
func WithWriteBufferSize(n int) StreamOption {
	return streamOptFunc(func(cfg *streamConfig) error {
		if n < 1 {
			return errors.New("transport: write buffer size must be >= 1")
		}
		cfg.writeBufSize = n

		return nil
	})
}

// WithStreamLogger sets the logger of the stream.
func WithStreamLogger(l logger.Logger) StreamOption {
	return streamOptFunc(func(cfg *streamConfig) error {
		if l == nil {
			return errors.New("transport: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

// NewStream starts reading rw in the background until ctx is done, Close is
// called or a read fails.
func NewStream(ctx context.Context, rw io.ReadWriter, opts ...StreamOption) (*Stream, error) {
	if rw == nil {
		return nil, errors.New("transport: reader-writer is nil")
	}

	cfg := &streamConfig{
		readBufSize:  DefaultReadBufferSize,
		writeBufSize: DefaultWriteBufferSize,
		logger:       logger.GetLogger(),
	}
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		rw:          rw,
		w:           bufio.NewWriterSize(rw, cfg.writeBufSize),
		in:          queue.NewLockFreeQueue[byte](),
		logger:      cfg.logger,
		readBufSize: cfg.readBufSize,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go s.readLoop(ctx)

	return s, nil
}

func (s *Stream) readLoop(ctx context.Context) {
	defer close(s.done)

	buf := make([]byte, s.readBufSize)
	for {
		select {
		case <-ctx.Done():
			s.setErr(ctx.Err())
			return
		default:
		}

		n, err := s.rw.Read(buf)
		for _, b := range buf[:n] {
			s.in.Enqueue(b)
		}
		if err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			s.setErr(err)
			s.logger.Debug("transport: stream reader stopped", "error", err)

			return
		}
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err == nil {
		s.err = err
	}
}

// Err returns the error that stopped the background reader, or nil while it
// is running. Bytes read before the failure stay available.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Done is closed when the background reader has stopped.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Available implements framer.Transport.
func (s *Stream) Available() bool { return !s.in.IsEmpty() }

// Buffered returns the number of bytes read but not yet consumed.
func (s *Stream) Buffered() int { return s.in.Length() }

// ReadByte implements io.ByteReader.
func (s *Stream) ReadByte() (byte, error) {
	b, ok := s.in.Dequeue()
	if !ok {
		return 0, ErrNoData
	}

	return b, nil
}

// WriteByte implements io.ByteWriter. The byte is buffered until Flush.
func (s *Stream) WriteByte(b byte) error {
	if s.isClosed() {
		return ErrClosed
	}

	return s.w.WriteByte(b)
}

// Flush writes any buffered bytes to the underlying writer.
func (s *Stream) Flush() error {
	if s.isClosed() {
		return ErrClosed
	}

	return s.w.Flush()
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Close flushes pending writes, stops the background reader and closes rw
// when it implements io.Closer. Close waits for the reader to exit only when
// rw could be closed, since a bare io.Reader cannot be interrupted.
// Close flushes the shared write buffer, so it must not run concurrently
// with WriteByte or Flush.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	flushErr := s.w.Flush()
	s.cancel()

	closer, ok := s.rw.(io.Closer)
	if !ok {
		return flushErr
	}

	closeErr := closer.Close()
	<-s.done

	if err := errors.Join(flushErr, closeErr); err != nil {
		return fmt.Errorf("transport: close stream: %w", err)
	}

	return nil
}
