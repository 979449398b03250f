package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsesock/pulsesock-go/pkg/codec"
	"github.com/pulsesock/pulsesock-go/pkg/transport"
)

func TestBuilderRequiresAdapter(t *testing.T) {
	_, err := NewBuilder[string]().
		Codec(codec.Plaintext{}).
		Build()
	assert.ErrorIs(t, err, ErrNoAdapter)
}

func TestBuilderRequiresCodec(t *testing.T) {
	local, _ := transport.Pipe(64, true)

	_, err := NewBuilder[string]().
		Adapter(local).
		Build()
	assert.ErrorIs(t, err, ErrNoCodec)
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	local, _ := transport.Pipe(64, true)

	_, err := NewBuilder[string]().
		Adapter(local).
		Codec(codec.Plaintext{}).
		ChannelCapacity(-1).
		Build()
	assert.Error(t, err)
}

func TestBuilderDefaults(t *testing.T) {
	local, _ := transport.Pipe(64, true)

	sock, err := NewBuilder[string]().
		Adapter(local).
		Codec(codec.Plaintext{}).
		Build()
	require.NoError(t, err)
	defer sock.Close()

	assert.NotEmpty(t, sock.ConnectionID())
}
