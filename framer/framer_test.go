package framer

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-msgframe/transport"
)

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilTransport)

	_, err = New(transport.NewBuffer(), WithMaxInbound(0))
	assert.Error(t, err)

	f, err := New(transport.NewBuffer(), WithMaxOutbound(2), WithMaxInboundLen(3))
	require.NoError(t, err)
	assert.Equal(t, 2, f.Outbound().Cap())
	assert.Equal(t, 3, f.Inbound().MaxLen())
	assert.Same(t, f.Config().Metrics(), f.Metrics())
}

func TestFramer_RegisterLimits(t *testing.T) {
	f := newTestFramer(t, transport.NewBuffer(),
		WithMaxOutbound(1), WithMaxOutboundLen(4),
		WithMaxInbound(1), WithMaxInboundLen(2),
	)

	require.NoError(t, f.RegisterOutbound(0x01, 4, fixedEncoder()))
	assert.ErrorIs(t, f.RegisterOutbound(0x02, 1, fixedEncoder()), ErrCapacityExceeded)
	assert.Equal(t, 1, f.Outbound().Len())

	assert.ErrorIs(t, f.RegisterInbound(0x01, 3, nopDecoder()), ErrInvalidLength)
	require.NoError(t, f.RegisterInbound(0x01, 2, nopDecoder()))
	assert.ErrorIs(t, f.RegisterInbound(0x02, 2, nopDecoder()), ErrCapacityExceeded)

	// Outbound and inbound ids are independent namespaces.
	f2 := newTestFramer(t, transport.NewBuffer())
	require.NoError(t, f2.RegisterOutbound(0x05, 1, fixedEncoder()))
	require.NoError(t, f2.RegisterInbound(0x05, 2, nopDecoder()))
	assert.ErrorIs(t, f2.RegisterOutbound(0x05, 1, fixedEncoder()), ErrDuplicateID)
}

func TestFramer_Send(t *testing.T) {
	tr := transport.NewBuffer()
	f := newTestFramer(t, tr)

	require.NoError(t, f.RegisterOutbound(0x05, 2, fixedEncoder(0x0A, 0x14)))
	require.NoError(t, f.Send(0x05))

	assert.Equal(t, []byte{0x00, 0x05, 0x0A, 0x14, 0x1E}, tr.TakeWritten())
	assert.Equal(t, uint64(1), f.Metrics().FrameSendCount.Load())
}

func TestFramer_SendCustomStartByte(t *testing.T) {
	tr := transport.NewBuffer()
	f := newTestFramer(t, tr, WithStartByte(0xAA))

	require.NoError(t, f.RegisterOutbound(0x01, 3, fixedEncoder(0xFF, 0xFF, 0xFF)))
	require.NoError(t, f.Send(0x01))

	assert.Equal(t, AppendFrame(nil, 0xAA, 0x01, []byte{0xFF, 0xFF, 0xFF}), tr.Written())
}

func TestFramer_SendUnregistered(t *testing.T) {
	tr := transport.NewBuffer()
	f := newTestFramer(t, tr)
	require.NoError(t, f.RegisterOutbound(0x01, 1, fixedEncoder(0x01)))

	assert.NoError(t, f.Send(0x02))
	assert.Empty(t, tr.Written())
	assert.Zero(t, f.Metrics().FrameSendCount.Load())
}

func TestFramer_SendPayloadZeroed(t *testing.T) {
	tr := transport.NewBuffer()
	f := newTestFramer(t, tr)

	require.NoError(t, f.RegisterOutbound(0x01, 3, fixedEncoder(0x11, 0x22, 0x33)))
	// Encoder leaving the buffer untouched must not leak the previous payload.
	require.NoError(t, f.RegisterOutbound(0x02, 3, EncoderFunc(func([]byte) error { return nil })))

	require.NoError(t, f.SendAll())
	want := AppendFrame(nil, 0x00, 0x01, []byte{0x11, 0x22, 0x33})
	want = AppendFrame(want, 0x00, 0x02, []byte{0x00, 0x00, 0x00})
	assert.Equal(t, want, tr.Written())
}

func TestFramer_SendAllOrder(t *testing.T) {
	tr := transport.NewBuffer()
	f := newTestFramer(t, tr)

	ids := []byte{0x09, 0x03, 0x07, 0x01}
	for _, id := range ids {
		require.NoError(t, f.RegisterOutbound(id, 1, fixedEncoder(id)))
	}

	var want []byte
	for _, id := range ids {
		want = AppendFrame(want, 0x00, id, []byte{id})
	}

	for range 3 {
		require.NoError(t, f.SendAll())
		assert.Equal(t, want, tr.TakeWritten(), "SendAll must follow registration order on every call")
	}
	assert.Equal(t, uint64(3*len(ids)), f.Metrics().FrameSendCount.Load())
}

func TestFramer_SendEncodeError(t *testing.T) {
	tr := transport.NewBuffer()
	f := newTestFramer(t, tr)

	errSensor := errors.New("sensor offline")
	require.NoError(t, f.RegisterOutbound(0x01, 1, fixedEncoder(0x01)))
	require.NoError(t, f.RegisterOutbound(0x02, 2, EncoderFunc(func([]byte) error { return errSensor })))
	require.NoError(t, f.RegisterOutbound(0x03, 1, fixedEncoder(0x03)))

	err := f.Send(0x02)
	assert.ErrorIs(t, err, ErrEncode)
	assert.ErrorIs(t, err, errSensor)
	assert.Empty(t, tr.Written(), "nothing is written when the encoder fails")

	err = f.SendAll()
	assert.ErrorIs(t, err, errSensor)
	assert.Equal(t, AppendFrame(nil, 0x00, 0x01, []byte{0x01}), tr.Written(), "SendAll stops at the first error")
	assert.Equal(t, uint64(2), f.Metrics().EncodeErrCount.Load())
}

func TestFramer_SendWriteError(t *testing.T) {
	errLine := errors.New("line down")
	tr := newScriptedTransport(newFakeClock(time.Millisecond), nil)
	tr.writeErr = errLine
	tr.writeLimit = 2

	f := newTestFramer(t, tr)
	require.NoError(t, f.RegisterOutbound(0x01, 2, fixedEncoder(0x01, 0x02)))

	err := f.Send(0x01)
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, errLine)
	assert.Equal(t, []byte{0x00, 0x01}, tr.written)
	assert.Zero(t, tr.flushes)
	assert.Zero(t, f.Metrics().FrameSendCount.Load())
}

func TestFramer_SendFlushesPerFrame(t *testing.T) {
	tr := newScriptedTransport(newFakeClock(time.Millisecond), nil)
	f := newTestFramer(t, tr)
	require.NoError(t, f.RegisterOutbound(0x01, 1, fixedEncoder(0x01)))
	require.NoError(t, f.RegisterOutbound(0x02, 1, fixedEncoder(0x02)))

	require.NoError(t, f.SendAll())
	assert.Equal(t, 2, tr.flushes)
}

func TestFramer_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	hostEnd, deviceEnd := transport.NewPipe()
	host := newTestFramer(t, hostEnd, WithMaxOutboundLen(MaxPayloadLength))
	device := newTestFramer(t, deviceEnd, WithMaxInboundLen(MaxPayloadLength))

	lengths := map[byte]int{0x00: 1, 0x01: 2, 0x10: 17, 0x7F: 64, 0xFF: MaxPayloadLength}
	sent := map[byte][]byte{}
	got := map[byte]*recorder{}

	for id, length := range lengths {
		require.NoError(t, host.RegisterOutbound(id, length, EncoderFunc(func(payload []byte) error {
			for i := range payload {
				payload[i] = byte(rng.UintN(256))
			}
			sent[id] = append([]byte(nil), payload...)
			return nil
		})))
		got[id] = &recorder{}
		require.NoError(t, device.RegisterInbound(id, length, got[id]))
	}

	for range 20 {
		for id := range lengths {
			require.NoError(t, host.Send(id))
			require.NoError(t, device.PollReceive())

			rec := got[id]
			require.NotEmpty(t, rec.payloads)
			assert.Equal(t, sent[id], rec.payloads[len(rec.payloads)-1], "msgID 0x%02X", id)
		}
	}

	for id, rec := range got {
		assert.Len(t, rec.payloads, 20, "msgID 0x%02X dispatched exactly once per send", id)
	}
	assert.Zero(t, device.Metrics().ChecksumErrCount.Load())
}
