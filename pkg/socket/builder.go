package socket

import (
	"errors"
	"time"

	"github.com/pulsesock/pulsesock-go/pkg/codec"
	"github.com/pulsesock/pulsesock-go/pkg/log"
	"github.com/pulsesock/pulsesock-go/pkg/transport"
)

// Builder errors.
var (
	ErrNoAdapter = errors.New("adapter is required")
	ErrNoCodec   = errors.New("codec is required")
)

// Builder assembles a Socket from its parts: the wire adapter and
// payload codec are required, everything else has defaults.
type Builder[P any] struct {
	adapter  transport.Adapter
	codec    codec.Codec[P]
	observer transport.Observer
	logger   log.Logger
	policy   MalformedPolicy
	config   Config
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder[P any]() *Builder[P] {
	return &Builder[P]{
		observer: transport.NoopObserver{},
		logger:   log.NoopLogger{},
		config:   DefaultConfig(),
	}
}

// Adapter sets the wire adapter around the established native
// connection. Required.
func (b *Builder[P]) Adapter(adapter transport.Adapter) *Builder[P] {
	b.adapter = adapter
	return b
}

// Codec sets the payload codec. Required.
func (b *Builder[P]) Codec(c codec.Codec[P]) *Builder[P] {
	b.codec = c
	return b
}

// Observer sets the traffic observer. Defaults to a no-op.
func (b *Builder[P]) Observer(observer transport.Observer) *Builder[P] {
	b.observer = observer
	return b
}

// Logger sets the lifecycle event logger. Defaults to a no-op.
func (b *Builder[P]) Logger(logger log.Logger) *Builder[P] {
	b.logger = logger
	return b
}

// MalformedFrames sets the policy for frames that fail decoding.
// Defaults to MalformedDrop.
func (b *Builder[P]) MalformedFrames(policy MalformedPolicy) *Builder[P] {
	b.policy = policy
	return b
}

// Config replaces the whole configuration.
func (b *Builder[P]) Config(cfg Config) *Builder[P] {
	b.config = cfg
	return b
}

// ChannelCapacity sets the bound of the internal queues used to buffer
// frames sent and received.
//
// Default value: 64.
func (b *Builder[P]) ChannelCapacity(capacity int) *Builder[P] {
	b.config.ChannelCapacity = capacity
	return b
}

// HeartbeatInterval sets the heartbeat period. Heartbeats are sent as
// ping frames and act as a keep-alive mechanism as well as to measure
// round-trip latency (see transport.Observer).
//
// Default value: 5s.
func (b *Builder[P]) HeartbeatInterval(interval time.Duration) *Builder[P] {
	b.config.HeartbeatInterval = interval
	return b
}

// IdleTimeout sets the idle timeout. If no frames are received within
// the timeout, the receive stream ends. This should always be higher
// than the heartbeat interval.
//
// Default value: 15s.
func (b *Builder[P]) IdleTimeout(timeout time.Duration) *Builder[P] {
	b.config.IdleTimeout = timeout
	return b
}

// Build spawns the transport around the adapter and returns the
// configured Socket.
func (b *Builder[P]) Build() (*Socket[P], error) {
	if b.adapter == nil {
		return nil, ErrNoAdapter
	}
	if b.codec == nil {
		return nil, ErrNoCodec
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	observer := b.observer
	if observer == nil {
		observer = transport.NoopObserver{}
	}

	driver := transport.Spawn(
		b.adapter,
		observer,
		b.logger,
		b.config.ChannelCapacity,
		b.config.HeartbeatInterval,
	)

	return &Socket[P]{
		core:     transport.NewCore(driver, b.config.IdleTimeout),
		codec:    b.codec,
		observer: observer,
		policy:   b.policy,
	}, nil
}

// New creates a Socket with the given adapter and codec using default
// configuration.
func New[P any](adapter transport.Adapter, c codec.Codec[P]) (*Socket[P], error) {
	return NewBuilder[P]().Adapter(adapter).Codec(c).Build()
}
