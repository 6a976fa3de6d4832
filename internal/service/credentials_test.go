package service_test

import (
	"testing"

	"fitflow/internal/service"

	"github.com/stretchr/testify/require"
)

func TestPlaintextCodecRoundTrip(t *testing.T) {
	codec, err := service.NewCredentialCodec("plaintext")
	require.NoError(t, err)

	stored, err := codec.Encode("hunter2")
	require.NoError(t, err)
	require.Equal(t, "hunter2", stored)
	require.True(t, codec.Verify(stored, "hunter2"))
	require.False(t, codec.Verify(stored, "hunter3"))
}

func TestEmptyNameDefaultsToPlaintext(t *testing.T) {
	codec, err := service.NewCredentialCodec("")
	require.NoError(t, err)
	stored, err := codec.Encode("pw")
	require.NoError(t, err)
	require.Equal(t, "pw", stored)
}

func TestBcryptCodecRoundTrip(t *testing.T) {
	codec, err := service.NewCredentialCodec("bcrypt")
	require.NoError(t, err)

	stored, err := codec.Encode("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", stored)
	require.True(t, codec.Verify(stored, "hunter2"))
	require.False(t, codec.Verify(stored, "hunter3"))
}

func TestUnknownCodecRejected(t *testing.T) {
	_, err := service.NewCredentialCodec("rot13")
	require.Error(t, err)
}
