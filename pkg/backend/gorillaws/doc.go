// Package gorillaws adapts a gorilla/websocket connection to the
// transport.Adapter contract.
//
// The adapter surfaces every WebSocket frame, control frames included,
// as a frame.Frame. Incoming pings are answered with a pong by the
// adapter itself, matching the protocol requirement, and are still
// delivered upstream so the transport can observe them.
//
//	conn, _, err := websocket.DefaultDialer.Dial("ws://host/ws", nil)
//	if err != nil { ... }
//	sock, err := socket.New[string](gorillaws.New(conn), codec.Plaintext{})
package gorillaws
