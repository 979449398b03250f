// Package transport implements the duplex bridging layer.
//
// The transport layer handles:
//   - Bridging an already-established native frame connection to two
//     bounded queues (inbound, outbound)
//   - Heartbeat ping/pong injection with round-trip latency measurement
//   - Idle-timeout enforcement on the consumer-visible stream
//   - Coordinated shutdown of both directions
//
// # Layer Stack
//
//	┌────────────────────────────────┐
//	│      Typed payloads (socket)   │
//	├────────────────────────────────┤
//	│   Core (idle timeout, filter)  │
//	├────────────────────────────────┤
//	│   Driver (queues, heartbeat)   │
//	├────────────────────────────────┤
//	│   Adapter (native connection)  │
//	└────────────────────────────────┘
//
// A Driver runs as a pair of background goroutines per connection and is
// the sole owner of the Adapter. The Core is the queue-backed duplex
// object handed upward; it never touches the native connection directly.
//
// # Heartbeat
//
// Connection liveness is probed with ping frames carrying the current
// Unix time in milliseconds (8 bytes, big-endian). A compliant peer
// echoes the payload back as a pong, from which the round-trip time is
// computed and reported to the Observer.
package transport
