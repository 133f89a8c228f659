package framer

import (
	"fmt"
	"io"

	"github.com/arloliu/go-msgframe/logger"
)

// Transport is the byte-level link a Framer runs on.
//
// Available reports whether at least one byte can be read without blocking.
// ReadByte is only called after Available returned true.
type Transport interface {
	Available() bool
	io.ByteReader
	io.ByteWriter
}

// Flusher is implemented by transports that buffer writes.
// The Framer flushes after every complete frame.
type Flusher interface {
	Flush() error
}

// Framer encodes registered outbound messages onto a Transport and decodes
// inbound frames from it.
//
// This type is NOT goroutine-safe.
type Framer struct {
	transport Transport
	cfg       *Config
	logger    logger.Logger
	metrics   *Metrics

	outbound *Registry[Encoder]
	inbound  *Registry[Decoder]

	// Payload scratch buffers sized to the largest payload per direction.
	txBuf []byte
	rxBuf []byte
}

// New creates a Framer on t.
func New(t Transport, opts ...Option) (*Framer, error) {
	if t == nil {
		return nil, ErrNilTransport
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Framer{
		transport: t,
		cfg:       cfg,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		outbound:  NewRegistry[Encoder](cfg.maxOutbound, cfg.maxOutboundLen),
		inbound:   NewRegistry[Decoder](cfg.maxInbound, cfg.maxInboundLen),
		txBuf:     make([]byte, cfg.maxOutboundLen),
		rxBuf:     make([]byte, cfg.maxInboundLen),
	}, nil
}

// Config returns the framer configuration.
func (f *Framer) Config() *Config { return f.cfg }

// Metrics returns the framer counters.
func (f *Framer) Metrics() *Metrics { return f.metrics }

// Outbound returns the outbound registry.
func (f *Framer) Outbound() *Registry[Encoder] { return f.outbound }

// Inbound returns the inbound registry.
func (f *Framer) Inbound() *Registry[Decoder] { return f.inbound }

// RegisterOutbound registers an outbound message. See Registry.Register.
func (f *Framer) RegisterOutbound(id byte, length int, enc Encoder) error {
	return f.outbound.Register(id, length, enc)
}

// RegisterInbound registers an inbound message. See Registry.Register.
func (f *Framer) RegisterInbound(id byte, length int, dec Decoder) error {
	return f.inbound.Register(id, length, dec)
}

// Send encodes and writes the outbound message registered as id.
//
// Sending an unregistered id is a no-op. An encoder error aborts the send
// before any byte is written.
func (f *Framer) Send(id byte) error {
	desc, ok := f.outbound.Lookup(id)
	if !ok {
		return nil
	}

	return f.send(desc)
}

// SendAll sends every outbound message once, in registration order.
// It stops at the first error.
func (f *Framer) SendAll() error {
	for _, desc := range f.outbound.descs {
		if err := f.send(desc); err != nil {
			return err
		}
	}

	return nil
}

func (f *Framer) send(desc Descriptor[Encoder]) error {
	payload := f.txBuf[:desc.Length]
	clear(payload)

	if err := desc.Codec.Encode(payload); err != nil {
		f.metrics.incEncodeErrCount()
		return fmt.Errorf("%w: msgID 0x%02X: %w", ErrEncode, desc.ID, err)
	}

	if err := f.writeByte(f.cfg.startByte); err != nil {
		return err
	}
	if err := f.writeByte(desc.ID); err != nil {
		return err
	}
	for _, b := range payload {
		if err := f.writeByte(b); err != nil {
			return err
		}
	}
	if err := f.writeByte(Checksum(payload)); err != nil {
		return err
	}

	if fl, ok := f.transport.(Flusher); ok {
		if err := fl.Flush(); err != nil {
			return fmt.Errorf("%w: flush: %w", ErrWrite, err)
		}
	}

	f.metrics.incFrameSendCount()

	return nil
}

func (f *Framer) writeByte(b byte) error {
	if err := f.transport.WriteByte(b); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}
