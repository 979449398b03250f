package log

// Logger receives transport events: frame traffic, lifecycle state
// changes, heartbeat latency and errors.
type Logger interface {
	// Log records one event. The transport calls Log from its own
	// goroutines, so implementations must be safe for concurrent use
	// and must not block; queue or drop if processing is slow.
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
