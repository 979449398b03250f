// Package socket provides the typed duplex facade over the transport
// layer.
//
// A Socket wraps an established native connection (via a
// transport.Adapter) and exposes a send/receive stream of typed
// application payloads. Serialization is pluggable through codec.Codec;
// heartbeat probing, idle-timeout enforcement and shutdown coordination
// come from the underlying transport.
//
// # Basic Usage
//
//	sock, err := socket.New[string](adapter, codec.Plaintext{})
//	if err != nil {
//	    return err
//	}
//	defer sock.Close()
//
//	if err := sock.Send(ctx, "hello world"); err != nil {
//	    return err
//	}
//	msg, err := sock.Receive(ctx) // io.EOF once the stream ends
//
// Use the Builder for non-default configuration:
//
//	sock, err := socket.NewBuilder[string]().
//	    Adapter(adapter).
//	    Codec(codec.Plaintext{}).
//	    Observer(myObserver).
//	    HeartbeatInterval(time.Second).
//	    IdleTimeout(10 * time.Second).
//	    Build()
//
// The underlying transport is released when Close is called; always call
// Close on every exit path.
package socket
