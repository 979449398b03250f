package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/pulsesock/pulsesock-go/pkg/frame"
	"github.com/pulsesock/pulsesock-go/pkg/wserr"
)

// encMode is the CBOR encoder mode, configured for deterministic output.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode, lenient for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// CBOR transmits any CBOR-serializable payload type on binary frames,
// using deterministic encoding.
type CBOR[T any] struct{}

// FrameKind returns frame.KindBinary.
func (CBOR[T]) FrameKind() frame.Kind {
	return frame.KindBinary
}

// Encode serializes the payload to CBOR.
func (CBOR[T]) Encode(payload T) ([]byte, error) {
	data, err := encMode.Marshal(payload)
	if err != nil {
		return nil, wserr.Encoding(err)
	}
	return data, nil
}

// Decode deserializes the payload from CBOR.
func (CBOR[T]) Decode(data []byte) (T, error) {
	var payload T
	if err := decMode.Unmarshal(data, &payload); err != nil {
		return payload, wserr.Decoding(err)
	}
	return payload, nil
}
