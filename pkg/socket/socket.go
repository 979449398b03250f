package socket

import (
	"context"

	"github.com/pulsesock/pulsesock-go/pkg/codec"
	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/transport"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// MalformedPolicy controls what happens when a received frame fails
// frame or payload decoding.
type MalformedPolicy uint8

const (
	// MalformedDrop discards the malformed item and keeps polling. The
	// failure is still reported through Observer.OnMalformed.
	MalformedDrop MalformedPolicy = iota

	// MalformedFail returns the decode error to the caller. The stream
	// is not terminated; the caller decides whether to keep receiving.
	MalformedFail
)

// Socket is a typed duplex stream of application payloads over an
// established native connection.
//
// Receive must be called from a single goroutine; Send may run
// concurrently with Receive. The underlying transport is released by
// Close.
type Socket[P any] struct {
	core     *transport.Core
	codec    codec.Codec[P]
	observer transport.Observer
	policy   MalformedPolicy
}

// Send encodes the payload and forwards it to the wire, blocking while
// the outbound queue is at capacity. Encoding failures are returned
// synchronously and do not close the connection. Sending after the
// transport ended fails with a closed error.
func (s *Socket[P]) Send(ctx context.Context, payload P) error {
	data, err := s.codec.Encode(payload)
	if err != nil {
		return asEncoding(err)
	}

	return s.core.Send(ctx, codec.Wrap(s.codec.FrameKind(), data))
}

// Receive returns the next decoded payload. It returns io.EOF once the
// stream has ended (peer close, native stream end, or idle timeout);
// after that every call returns io.EOF. Malformed items are handled per
// the configured MalformedPolicy.
func (s *Socket[P]) Receive(ctx context.Context) (P, error) {
	var zero P

	for {
		f, err := s.core.Receive(ctx)
		if err != nil {
			return zero, err
		}

		payload, err := s.decode(f)
		if err == nil {
			return payload, nil
		}

		s.observer.OnMalformed(err)
		if s.policy == MalformedFail {
			return zero, err
		}
		// MalformedDrop: discard the item and keep polling.
	}
}

func (s *Socket[P]) decode(f frame.Frame) (P, error) {
	var zero P

	data, err := codec.Unwrap(s.codec.FrameKind(), f)
	if err != nil {
		return zero, err
	}

	payload, err := s.codec.Decode(data)
	if err != nil {
		return zero, asDecoding(err)
	}
	return payload, nil
}

// Close shuts the transport down, cutting both directions without a
// flush guarantee. Idempotent.
func (s *Socket[P]) Close() error {
	s.core.Close()
	return nil
}

// ConnectionID returns the connection UUID shared with log events.
func (s *Socket[P]) ConnectionID() string {
	return s.core.ConnectionID()
}

// Done returns a channel closed once the underlying transport has fully
// stopped.
func (s *Socket[P]) Done() <-chan struct{} {
	return s.core.Done()
}

// asEncoding classifies an unclassified codec error as an encoding
// failure. Built-in codecs already classify; third-party ones may not.
func asEncoding(err error) error {
	if _, ok := wserr.KindOf(err); ok {
		return err
	}
	return wserr.Encoding(err)
}

func asDecoding(err error) error {
	if _, ok := wserr.KindOf(err); ok {
		return err
	}
	return wserr.Decoding(err)
}
