package log

import (
	"time"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
)

// Event represents a transport log event captured on one connection.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string

	// Category classifies the event type.
	Category Category

	// Direction indicates frame flow. Meaningful for CategoryFrame and
	// CategoryLatency events.
	Direction Direction

	// Type-specific payload (at most one of these is set).
	Frame       *FrameEvent
	StateChange *StateChangeEvent
	Error       *ErrorEvent

	// Latency is the measured ping round-trip time, set for
	// CategoryLatency events.
	Latency time.Duration
}

// Direction indicates the direction of frame flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming frame.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing frame.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame is a frame sent or received.
	CategoryFrame Category = 0
	// CategoryState is a connection lifecycle transition.
	CategoryState Category = 1
	// CategoryLatency is a measured ping round-trip time.
	CategoryLatency Category = 2
	// CategoryError is an error at any layer.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryLatency:
		return "LATENCY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures one frame crossing the transport.
type FrameEvent struct {
	// Kind is the frame kind.
	Kind frame.Kind

	// Size is the payload size in bytes.
	Size int
}

// StateChangeEvent captures a connection lifecycle transition.
type StateChangeEvent struct {
	// OldState is the state before the transition.
	OldState string

	// NewState is the state after the transition.
	NewState string

	// Reason describes why the transition happened, if known.
	Reason string
}

// ErrorEvent captures an error at any layer.
type ErrorEvent struct {
	// Message is the error text.
	Message string
}

// NewFrameEvent creates a frame traffic event.
func NewFrameEvent(connID string, dir Direction, f frame.Frame) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Category:     CategoryFrame,
		Direction:    dir,
		Frame: &FrameEvent{
			Kind: f.Kind,
			Size: len(f.Bytes()),
		},
	}
}

// NewStateEvent creates a lifecycle transition event.
func NewStateEvent(connID, oldState, newState, reason string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Category:     CategoryState,
		StateChange: &StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	}
}

// NewLatencyEvent creates a round-trip latency event.
func NewLatencyEvent(connID string, rtt time.Duration) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Category:     CategoryLatency,
		Latency:      rtt,
	}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(connID string, err error) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Category:     CategoryError,
		Error:        &ErrorEvent{Message: err.Error()},
	}
}
