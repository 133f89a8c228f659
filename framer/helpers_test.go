package framer

import (
	"errors"
	"testing"
	"time"

	"github.com/arloliu/go-msgframe/logger"
)

// fakeClock advances by step on every Now call, so a spin-wait against it
// always terminates without wall-clock sleeps.
type fakeClock struct {
	start time.Time
	now   time.Time
	step  time.Duration
	calls int
}

func newFakeClock(step time.Duration) *fakeClock {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeClock{start: t0, now: t0, step: step}
}

func (c *fakeClock) Now() time.Time {
	c.calls++
	c.now = c.now.Add(c.step)

	return c.now
}

func (c *fakeClock) elapsed() time.Duration { return c.now.Sub(c.start) }

// arrival is a chunk of bytes that becomes available once the fake clock
// has advanced past at.
type arrival struct {
	at   time.Duration
	data []byte
}

// scriptedTransport releases inbound bytes on a fake clock timeline and
// records everything written.
type scriptedTransport struct {
	clock   *fakeClock
	buf     []byte
	pending []arrival
	written []byte

	readErr    error
	writeErr   error
	writeLimit int // fail writes after this many bytes when writeErr is set
	flushes    int
}

func newScriptedTransport(clock *fakeClock, initial []byte, later ...arrival) *scriptedTransport {
	return &scriptedTransport{clock: clock, buf: append([]byte(nil), initial...), pending: later}
}

func (s *scriptedTransport) release() {
	for len(s.pending) > 0 && s.clock.elapsed() >= s.pending[0].at {
		s.buf = append(s.buf, s.pending[0].data...)
		s.pending = s.pending[1:]
	}
}

func (s *scriptedTransport) Available() bool {
	s.release()
	return len(s.buf) > 0
}

func (s *scriptedTransport) ReadByte() (byte, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	if len(s.buf) == 0 {
		return 0, errors.New("scripted: empty")
	}
	b := s.buf[0]
	s.buf = s.buf[1:]

	return b, nil
}

func (s *scriptedTransport) WriteByte(b byte) error {
	if s.writeErr != nil && len(s.written) >= s.writeLimit {
		return s.writeErr
	}
	s.written = append(s.written, b)

	return nil
}

func (s *scriptedTransport) Flush() error {
	s.flushes++
	return nil
}

// recorder is a Decoder keeping a copy of every payload it receives.
type recorder struct {
	payloads [][]byte
	err      error
}

func (r *recorder) Decode(payload []byte) error {
	r.payloads = append(r.payloads, append([]byte(nil), payload...))
	return r.err
}

// fixedEncoder is an Encoder copying data into the payload.
func fixedEncoder(data ...byte) EncoderFunc {
	return func(payload []byte) error {
		copy(payload, data)
		return nil
	}
}

func quietLogger() logger.Logger {
	return logger.NewSlog(logger.ErrorLevel, false)
}

func newTestFramer(t *testing.T, tr Transport, opts ...Option) *Framer {
	t.Helper()

	defaults := []Option{WithLogger(quietLogger())}
	f, err := New(tr, append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestFramer: %v", err)
	}

	return f
}
