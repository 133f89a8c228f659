package framer

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-msgframe/logger"
)

// Default configuration values.
const (
	DefaultStartByte        byte = 0x00
	DefaultMaxMessages           = 16
	DefaultMaxPayloadLength      = 64
	DefaultInterByteTimeout      = 10 * time.Millisecond
)

// Configuration limits.
const (
	// MaxMessages is the largest registry size: one message per id value.
	MaxMessages = 256
	// MaxPayloadLength is the largest payload a message can carry.
	MaxPayloadLength = 255
	// MaxInterByteTimeout bounds how long a single waited read may spin.
	MaxInterByteTimeout = 10 * time.Second
)

// Config holds the construction-time parameters of a Framer.
type Config struct {
	startByte byte

	maxOutbound    int
	maxInbound     int
	maxOutboundLen int
	maxInboundLen  int

	// interByteTimeout bounds each waited read. Zero selects plain reads.
	interByteTimeout time.Duration

	clock   Clock
	logger  logger.Logger
	metrics *Metrics
}

// NewConfig creates a Config from the defaults and the given options,
// applied in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		startByte:        DefaultStartByte,
		maxOutbound:      DefaultMaxMessages,
		maxInbound:       DefaultMaxMessages,
		maxOutboundLen:   DefaultMaxPayloadLength,
		maxInboundLen:    DefaultMaxPayloadLength,
		interByteTimeout: DefaultInterByteTimeout,
		clock:            SystemClock{},
		logger:           logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.metrics == nil {
		cfg.metrics = &Metrics{}
	}

	return cfg, nil
}

// StartByte returns the frame start marker.
func (cfg *Config) StartByte() byte { return cfg.startByte }

// MaxOutbound returns the outbound registry capacity.
func (cfg *Config) MaxOutbound() int { return cfg.maxOutbound }

// MaxInbound returns the inbound registry capacity.
func (cfg *Config) MaxInbound() int { return cfg.maxInbound }

// MaxOutboundLen returns the largest outbound payload length.
func (cfg *Config) MaxOutboundLen() int { return cfg.maxOutboundLen }

// MaxInboundLen returns the largest inbound payload length.
func (cfg *Config) MaxInboundLen() int { return cfg.maxInboundLen }

// InterByteTimeout returns the waited read bound; zero means plain reads.
func (cfg *Config) InterByteTimeout() time.Duration { return cfg.interByteTimeout }

// WaitEnabled reports whether decoding uses waited reads.
func (cfg *Config) WaitEnabled() bool { return cfg.interByteTimeout > 0 }

// Clock returns the configured time source.
func (cfg *Config) Clock() Clock { return cfg.clock }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Metrics returns the metrics the framer reports into.
func (cfg *Config) Metrics() *Metrics { return cfg.metrics }

// --- Option ---

// Option is a functional option for configuring a Framer.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithStartByte sets the frame start marker. Default 0x00.
func WithStartByte(b byte) Option {
	return optFunc(func(cfg *Config) error {
		cfg.startByte = b
		return nil
	})
}

// WithMaxOutbound sets how many outbound messages can be registered, 1-256.
func WithMaxOutbound(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxMessages {
			return fmt.Errorf("framer: max outbound messages %d out of range [1, %d]", n, MaxMessages)
		}
		cfg.maxOutbound = n

		return nil
	})
}

// WithMaxInbound sets how many inbound messages can be registered, 1-256.
func WithMaxInbound(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxMessages {
			return fmt.Errorf("framer: max inbound messages %d out of range [1, %d]", n, MaxMessages)
		}
		cfg.maxInbound = n

		return nil
	})
}

// WithMaxOutboundLen sets the largest outbound payload length, 1-255.
func WithMaxOutboundLen(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxPayloadLength {
			return fmt.Errorf("framer: max outbound payload length %d out of range [1, %d]", n, MaxPayloadLength)
		}
		cfg.maxOutboundLen = n

		return nil
	})
}

// WithMaxInboundLen sets the largest inbound payload length, 1-255.
func WithMaxInboundLen(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxPayloadLength {
			return fmt.Errorf("framer: max inbound payload length %d out of range [1, %d]", n, MaxPayloadLength)
		}
		cfg.maxInboundLen = n

		return nil
	})
}

// WithInterByteTimeout sets how long a waited read polls for the next byte
// of a frame, 0-10s. Zero is the same as WithoutWait.
func WithInterByteTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < 0 || d > MaxInterByteTimeout {
			return fmt.Errorf("framer: inter-byte timeout %v out of range [0, %v]", d, MaxInterByteTimeout)
		}
		cfg.interByteTimeout = d

		return nil
	})
}

// WithoutWait selects plain reads: every byte of a frame must already be
// buffered when decoding reaches it.
func WithoutWait() Option {
	return optFunc(func(cfg *Config) error {
		cfg.interByteTimeout = 0
		return nil
	})
}

// WithClock sets the time source for inter-byte waits.
func WithClock(c Clock) Option {
	return optFunc(func(cfg *Config) error {
		if c == nil {
			return errors.New("framer: clock must not be nil")
		}
		cfg.clock = c

		return nil
	})
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("framer: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

// WithMetrics makes the framer report into m, e.g. to share one set of
// counters across framers.
func WithMetrics(m *Metrics) Option {
	return optFunc(func(cfg *Config) error {
		if m == nil {
			return errors.New("framer: metrics must not be nil")
		}
		cfg.metrics = m

		return nil
	})
}
