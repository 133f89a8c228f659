package framer

import (
	"sync/atomic"
)

// Metrics contains atomic counters for a Framer.
// Fields can back a prometheus CounterFunc; see package metrics.
type Metrics struct {
	// FrameSendCount indicates the number of frames written.
	FrameSendCount atomic.Uint64
	// FrameRecvCount indicates the number of frames that passed the checksum.
	FrameRecvCount atomic.Uint64

	// ChecksumErrCount indicates the number of frames dropped on checksum mismatch.
	ChecksumErrCount atomic.Uint64
	// DesyncCount indicates the number of times a non-start byte was found
	// where a start byte was expected.
	DesyncCount atomic.Uint64
	// UnknownIDCount indicates the number of frames with an unregistered id.
	UnknownIDCount atomic.Uint64
	// TimeoutCount indicates the number of frames aborted by the inter-byte timeout.
	TimeoutCount atomic.Uint64
	// FlushedByteCount indicates the number of input bytes discarded by flushes.
	FlushedByteCount atomic.Uint64

	// EncodeErrCount indicates the number of sends aborted by an encoder error.
	EncodeErrCount atomic.Uint64
	// DecodeErrCount indicates the number of validated payloads a decoder rejected.
	DecodeErrCount atomic.Uint64
}

func (m *Metrics) incFrameSendCount()   { m.FrameSendCount.Add(1) }
func (m *Metrics) incFrameRecvCount()   { m.FrameRecvCount.Add(1) }
func (m *Metrics) incChecksumErrCount() { m.ChecksumErrCount.Add(1) }
func (m *Metrics) incDesyncCount()      { m.DesyncCount.Add(1) }
func (m *Metrics) incUnknownIDCount()   { m.UnknownIDCount.Add(1) }
func (m *Metrics) incTimeoutCount()     { m.TimeoutCount.Add(1) }
func (m *Metrics) incEncodeErrCount()   { m.EncodeErrCount.Add(1) }
func (m *Metrics) incDecodeErrCount()   { m.DecodeErrCount.Add(1) }

func (m *Metrics) addFlushedByteCount(n int) {
	if n > 0 {
		m.FlushedByteCount.Add(uint64(n))
	}
}
