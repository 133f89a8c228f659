package framer

import (
	"fmt"
	"runtime"
)

// recvResult classifies the outcome of one receiveFrame attempt.
type recvResult int

const (
	recvNext  recvResult = iota // Frame consumed exactly; continue with the next start byte.
	recvAbort                   // Input flushed; end this PollReceive call.
)

// PollReceive processes every byte currently available on the transport,
// dispatching zero or more validated frames to their decoders.
//
// Malformed input never produces an error: desynchronization, unknown ids and
// inter-byte timeouts flush the input and end the call, checksum mismatches
// drop the frame. Only transport read failures are returned, after the input
// has been flushed.
func (f *Framer) PollReceive() error {
	for f.transport.Available() {
		result, err := f.receiveFrame()
		if err != nil {
			f.flush()
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
		if result == recvAbort {
			return nil
		}
	}

	return nil
}

// receiveFrame reads one frame, starting at its start byte.
func (f *Framer) receiveFrame() (recvResult, error) {
	b, err := f.transport.ReadByte()
	if err != nil {
		return recvAbort, err
	}
	if b != f.cfg.startByte {
		f.metrics.incDesyncCount()
		n := f.flush()
		f.logger.Debug("framer: unexpected byte, input flushed",
			"got", b,
			"want", f.cfg.startByte,
			"flushed", n,
		)

		return recvAbort, nil
	}

	id, ok, err := f.readNext()
	if err != nil {
		return recvAbort, err
	}
	if !ok {
		return f.abortOnTimeout("id", -1), nil
	}

	desc, found := f.inbound.Lookup(id)
	if !found {
		f.metrics.incUnknownIDCount()
		n := f.flush()
		f.logger.Debug("framer: unknown message id, input flushed", "msgID", id, "flushed", n)

		return recvAbort, nil
	}

	payload := f.rxBuf[:desc.Length]
	var sum byte
	for i := range payload {
		v, ok, err := f.readNext()
		if err != nil {
			return recvAbort, err
		}
		if !ok {
			return f.abortOnTimeout("payload", int(id)), nil
		}
		payload[i] = v
		sum += v
	}

	checksum, ok, err := f.readNext()
	if err != nil {
		return recvAbort, err
	}
	if !ok {
		return f.abortOnTimeout("checksum", int(id)), nil
	}

	if checksum != sum {
		f.metrics.incChecksumErrCount()
		f.logger.Debug("framer: checksum mismatch, frame dropped",
			"msgID", id,
			"got", checksum,
			"want", sum,
		)

		return recvNext, nil
	}

	f.metrics.incFrameRecvCount()
	if err := desc.Codec.Decode(payload); err != nil {
		f.metrics.incDecodeErrCount()
		f.logger.Warn("framer: decoder rejected payload", "msgID", id, "error", err)
	}

	return recvNext, nil
}

// abortOnTimeout drops the partial frame; msgID is -1 when the id itself
// did not arrive.
func (f *Framer) abortOnTimeout(stage string, msgID int) recvResult {
	f.metrics.incTimeoutCount()
	n := f.flush()
	f.logger.Debug("framer: inter-byte timeout, frame aborted",
		"stage", stage,
		"msgID", msgID,
		"timeout", f.cfg.interByteTimeout,
		"flushed", n,
	)

	return recvAbort
}

// readNext reads the next byte of a frame under the configured read policy.
// ok is false when the byte did not arrive in time.
func (f *Framer) readNext() (b byte, ok bool, err error) {
	if !f.waitAvailable() {
		return 0, false, nil
	}
	b, err = f.transport.ReadByte()
	if err != nil {
		return 0, false, err
	}

	return b, true, nil
}

// waitAvailable spin-polls the transport until a byte is available or the
// inter-byte timeout elapses. With plain reads it only checks once.
func (f *Framer) waitAvailable() bool {
	if f.transport.Available() {
		return true
	}

	timeout := f.cfg.interByteTimeout
	if timeout <= 0 {
		return false
	}

	start := f.cfg.clock.Now()
	for !f.transport.Available() {
		if f.cfg.clock.Now().Sub(start) > timeout {
			return false
		}
		runtime.Gosched()
	}

	return true
}

// flush discards every byte currently available and returns the count.
func (f *Framer) flush() int {
	n := 0
	for f.transport.Available() {
		if _, err := f.transport.ReadByte(); err != nil {
			break
		}
		n++
	}
	f.metrics.addFlushedByteCount(n)

	return n
}
