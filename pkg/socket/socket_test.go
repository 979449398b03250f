package socket

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsesock/pulsesock-go/pkg/codec"
	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/transport"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// startEcho runs a raw peer that echoes data frames back verbatim.
// Pings are answered by the pipe itself when created with echoPings.
func startEcho(remote *transport.PipeAdapter) {
	go func() {
		for {
			f, err := remote.ReadFrame()
			if err != nil {
				return
			}
			if f.IsData() {
				if err := remote.WriteFrame(f); err != nil {
					return
				}
			}
		}
	}()
}

// receive wraps Receive with a test deadline.
func receive[P any](t *testing.T, s *Socket[P]) (P, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p, err := s.Receive(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("receive timed out")
	}
	return p, err
}

func TestPlaintextEcho(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	startEcho(remote)

	sock, err := New[string](local, codec.Plaintext{})
	require.NoError(t, err)
	defer sock.Close()

	require.NoError(t, sock.Send(context.Background(), "hello world"))

	got, err := receive(t, sock)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	// Peer goes away: the stream ends.
	remote.Close()
	_, err = receive(t, sock)
	assert.ErrorIs(t, err, io.EOF)
}

func TestJSONEcho(t *testing.T) {
	type payload struct {
		A int `json:"a"`
	}

	local, remote := transport.Pipe(64, true)
	startEcho(remote)

	sock, err := New[payload](local, codec.JSON[payload]{})
	require.NoError(t, err)
	defer sock.Close()

	sent := payload{A: 42}
	require.NoError(t, sock.Send(context.Background(), sent))

	got, err := receive(t, sock)
	require.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestBinaryEcho(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	startEcho(remote)

	sock, err := New[[]byte](local, codec.Binary{})
	require.NoError(t, err)
	defer sock.Close()

	sent := []byte{0x00, 0x01, 0xfe, 0xff, 0x42}
	require.NoError(t, sock.Send(context.Background(), sent))

	got, err := receive(t, sock)
	require.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestSendOrderingPreserved(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	startEcho(remote)

	sock, err := New[string](local, codec.Plaintext{})
	require.NoError(t, err)
	defer sock.Close()

	msgs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for _, msg := range msgs {
		require.NoError(t, sock.Send(context.Background(), msg))
	}

	for _, msg := range msgs {
		got, err := receive(t, sock)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}
}

// heartbeatObserver tallies heartbeat traffic.
type heartbeatObserver struct {
	transport.NoopObserver

	inboundPings   atomic.Int32
	inboundPongs   atomic.Int32
	outboundPings  atomic.Int32
	latencyReports atomic.Int32
}

func (o *heartbeatObserver) OnInbound(f frame.Frame) {
	switch f.Kind {
	case frame.KindPing:
		o.inboundPings.Add(1)
	case frame.KindPong:
		o.inboundPongs.Add(1)
	}
}

func (o *heartbeatObserver) OnOutbound(f frame.Frame) {
	if f.Kind == frame.KindPing {
		o.outboundPings.Add(1)
	}
}

func (o *heartbeatObserver) OnLatency(time.Duration) {
	o.latencyReports.Add(1)
}

func TestHeartbeatCounts(t *testing.T) {
	clientEnd, serverEnd := transport.Pipe(64, true)

	server, err := NewBuilder[string]().
		Adapter(serverEnd).
		Codec(codec.Plaintext{}).
		HeartbeatInterval(300 * time.Millisecond).
		Build()
	require.NoError(t, err)
	defer server.Close()

	observer := &heartbeatObserver{}
	client, err := NewBuilder[string]().
		Adapter(clientEnd).
		Codec(codec.Plaintext{}).
		Observer(observer).
		HeartbeatInterval(500 * time.Millisecond).
		Build()
	require.NoError(t, err)
	defer client.Close()

	time.Sleep(1100 * time.Millisecond)

	// Server pings at 300/600/900ms, client pings at 500/1000ms; the
	// pipe echoes each ping as a pong.
	assert.Equal(t, int32(3), observer.inboundPings.Load())
	assert.Equal(t, int32(2), observer.outboundPings.Load())
	assert.Equal(t, int32(2), observer.inboundPongs.Load())
	assert.Equal(t, int32(2), observer.latencyReports.Load())
}

func TestServerIdleTimeout(t *testing.T) {
	clientEnd, serverEnd := transport.Pipe(64, true)

	server, err := NewBuilder[string]().
		Adapter(serverEnd).
		Codec(codec.Plaintext{}).
		HeartbeatInterval(5 * time.Second).
		IdleTimeout(time.Second).
		Build()
	require.NoError(t, err)

	// Server loop: echo until the stream ends, then drop the connection.
	go func() {
		defer server.Close()
		for {
			msg, err := server.Receive(context.Background())
			if err != nil {
				return
			}
			if err := server.Send(context.Background(), msg); err != nil {
				return
			}
		}
	}()

	client, err := New[string](clientEnd, codec.Plaintext{})
	require.NoError(t, err)
	defer client.Close()

	// Client default heartbeat is 5s, so the server sees 1.1s of
	// silence, times out and hangs up.
	_, err = receive(t, client)
	assert.ErrorIs(t, err, io.EOF)
}

func TestClientIdleTimeout(t *testing.T) {
	clientEnd, serverEnd := transport.Pipe(64, true)
	startEcho(serverEnd)

	client, err := NewBuilder[string]().
		Adapter(clientEnd).
		Codec(codec.Plaintext{}).
		HeartbeatInterval(5 * time.Second).
		IdleTimeout(time.Second).
		Build()
	require.NoError(t, err)
	defer client.Close()

	time.Sleep(1100 * time.Millisecond)

	err = client.Send(context.Background(), "hello world")
	assert.ErrorIs(t, err, wserr.ErrClosed)

	_, err = receive(t, client)
	assert.ErrorIs(t, err, io.EOF)
}

// malformedObserver records decode failures.
type malformedObserver struct {
	transport.NoopObserver
	count atomic.Int32
}

func (o *malformedObserver) OnMalformed(error) {
	o.count.Add(1)
}

func TestMalformedDropPolicy(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	observer := &malformedObserver{}

	sock, err := NewBuilder[[]byte]().
		Adapter(local).
		Codec(codec.Binary{}).
		Observer(observer).
		Build()
	require.NoError(t, err)
	defer sock.Close()

	// A text frame for a binary codec is malformed and dropped; the
	// following binary frame comes through.
	require.NoError(t, remote.WriteFrame(frame.Text("wrong kind")))
	require.NoError(t, remote.WriteFrame(frame.Binary([]byte{1, 2, 3})))

	got, err := receive(t, sock)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, int32(1), observer.count.Load())
}

func TestMalformedFailPolicy(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	observer := &malformedObserver{}

	sock, err := NewBuilder[[]byte]().
		Adapter(local).
		Codec(codec.Binary{}).
		Observer(observer).
		MalformedFrames(MalformedFail).
		Build()
	require.NoError(t, err)
	defer sock.Close()

	require.NoError(t, remote.WriteFrame(frame.Text("wrong kind")))

	_, err = receive(t, sock)
	require.Error(t, err)
	kind, ok := wserr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, wserr.KindInvalidPayload, kind)
	assert.Equal(t, int32(1), observer.count.Load())

	// The failure does not terminate the stream.
	require.NoError(t, remote.WriteFrame(frame.Binary([]byte{9})))
	got, err := receive(t, sock)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, got)
}

// flakyCodec fails to encode one specific payload.
type flakyCodec struct {
	codec.Plaintext
}

func (flakyCodec) Encode(payload string) ([]byte, error) {
	if payload == "bad" {
		return nil, errors.New("unencodable payload")
	}
	return []byte(payload), nil
}

func TestEncodeFailureKeepsConnectionOpen(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	startEcho(remote)

	sock, err := New[string](local, flakyCodec{})
	require.NoError(t, err)
	defer sock.Close()

	err = sock.Send(context.Background(), "bad")
	require.Error(t, err)
	kind, ok := wserr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, wserr.KindEncoding, kind)

	// The connection is still usable.
	require.NoError(t, sock.Send(context.Background(), "ok"))
	got, err := receive(t, sock)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestCloseEndsBothDirections(t *testing.T) {
	local, remote := transport.Pipe(64, true)
	startEcho(remote)

	sock, err := New[string](local, codec.Plaintext{})
	require.NoError(t, err)

	require.NoError(t, sock.Close())
	require.NoError(t, sock.Close()) // idempotent

	select {
	case <-sock.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("transport did not stop after Close")
	}

	err = sock.Send(context.Background(), "x")
	assert.ErrorIs(t, err, wserr.ErrClosed)

	_, err = receive(t, sock)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConnectionID(t *testing.T) {
	local, _ := transport.Pipe(64, true)

	sock, err := New[string](local, codec.Plaintext{})
	require.NoError(t, err)
	defer sock.Close()

	assert.NotEmpty(t, sock.ConnectionID())
}
