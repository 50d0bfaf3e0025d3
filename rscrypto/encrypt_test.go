package rscrypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/id"
)

func TestParseEncryptionFormat(t *testing.T) {
	format, err := ParseEncryptionFormat("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, FormatChaCha20Poly1305, format)

	format, err = ParseEncryptionFormat("chacha20-sha256")
	require.NoError(t, err)
	assert.Equal(t, FormatChaCha20SHA256, format)

	_, err = ParseEncryptionFormat("aes-256-gcm")
	assert.ErrorIs(t, err, ErrUnsupportedEncryption)

	assert.Equal(t, "chacha20-sha256", FormatChaCha20SHA256.String())
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	hash := id.Sum([]byte("some file contents"))
	key := NewFileTransferEncryptionKey(hash)
	data := []byte("serialized turtle item")

	for _, format := range []EncryptionFormat{FormatChaCha20Poly1305, FormatChaCha20SHA256} {
		t.Run(format.String(), func(t *testing.T) {
			payload, err := EncryptAuthenticateData(key, data, format)
			require.NoError(t, err)
			assert.Equal(t, byte(format), payload[0])
			assert.Len(t, payload, headerSize+len(data)+format.tagSize())
			assert.False(t, bytes.Contains(payload, data), "plaintext must not appear in payload")

			plaintext, err := DecryptAuthenticateData(key, payload)
			require.NoError(t, err)
			assert.Equal(t, data, plaintext)
		})
	}
}

func TestDecryptWithOtherHashFails(t *testing.T) {
	key := NewFileTransferEncryptionKey(id.Sum([]byte("file a")))
	other := NewFileTransferEncryptionKey(id.Sum([]byte("file b")))

	for _, format := range []EncryptionFormat{FormatChaCha20Poly1305, FormatChaCha20SHA256} {
		payload, err := EncryptAuthenticateData(key, []byte("payload"), format)
		require.NoError(t, err)

		_, err = DecryptAuthenticateData(other, payload)
		assert.ErrorIs(t, err, ErrAuthenticationFailed, format.String())
	}
}

func TestDecryptTamperedPayload(t *testing.T) {
	key := NewFileTransferEncryptionKey(id.Sum([]byte("file")))

	payload, err := EncryptAuthenticateData(key, []byte("payload"), FormatChaCha20SHA256)
	require.NoError(t, err)
	payload[headerSize] ^= 0xff

	_, err = DecryptAuthenticateData(key, payload)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDecryptMalformedPayload(t *testing.T) {
	key := NewFileTransferEncryptionKey(id.Sum([]byte("file")))

	_, err := DecryptAuthenticateData(key, []byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrMalformedPayload)

	payload, err := EncryptAuthenticateData(key, []byte("payload"), FormatChaCha20Poly1305)
	require.NoError(t, err)
	_, err = DecryptAuthenticateData(key, payload[:len(payload)-1])
	assert.ErrorIs(t, err, ErrMalformedPayload)

	payload[0] = 0x7f
	_, err = DecryptAuthenticateData(key, payload)
	assert.ErrorIs(t, err, ErrUnsupportedEncryption)
}

func TestKeyDerivationIsDeterministic(t *testing.T) {
	hash := id.Sum([]byte("file"))
	assert.Equal(t, NewFileTransferEncryptionKey(hash), NewFileTransferEncryptionKey(hash))

	key := NewFileTransferEncryptionKey(hash)
	key.Wipe()
	assert.Equal(t, FileTransferEncryptionKey{}, key)
}

func TestSecureWipe(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	require.NoError(t, SecureWipe(data))
	assert.Equal(t, []byte{0, 0, 0, 0}, data)

	assert.ErrorIs(t, SecureWipe(nil), ErrNilBuffer)
}

func TestSecureFieldHash(t *testing.T) {
	fields := SecureFieldHash([]byte("secret payload"), "tunnel_data")
	assert.Equal(t, 14, fields["tunnel_data_size"])
	assert.Len(t, fields["tunnel_data_fingerprint"], 8)
	assert.NotContains(t, fields["tunnel_data_fingerprint"], "secret")

	assert.Equal(t, "nil", SecureFieldHash(nil, "x")["x_fingerprint"])
}
