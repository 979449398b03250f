// Package log provides structured event logging for the transport.
//
// The package defines the Logger interface and Event type for capturing
// connection-level events: lifecycle transitions, frame traffic and
// errors. It is separate from operational logging - a Logger receives a
// machine-readable event trace that can be inspected or forwarded.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	b.Logger(log.NewSlogAdapter(slog.Default()))
//
//	// Multiple sinks: use MultiLogger
//	b.Logger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    myCollector,
//	))
//
// Pass NoopLogger (or nothing) to disable logging entirely.
package log
