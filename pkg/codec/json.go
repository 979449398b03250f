package codec

import (
	"encoding/json"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// JSON transmits any JSON-serializable payload type on text frames.
type JSON[T any] struct{}

// FrameKind returns frame.KindText.
func (JSON[T]) FrameKind() frame.Kind {
	return frame.KindText
}

// Encode serializes the payload to JSON.
func (JSON[T]) Encode(payload T) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, wserr.Encoding(err)
	}
	return data, nil
}

// Decode deserializes the payload from JSON.
func (JSON[T]) Decode(data []byte) (T, error) {
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, wserr.Decoding(err)
	}
	return payload, nil
}
