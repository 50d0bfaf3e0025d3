package rscrypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// IVSize is the size of the random nonce prepended to each payload.
	IVSize = chacha20poly1305.NonceSize

	headerSize = 1 + IVSize + 4
)

var (
	// ErrAuthenticationFailed indicates a payload whose tag does not verify,
	// typically because it was encrypted for another file.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMalformedPayload indicates a payload too short or with an
	// inconsistent length field.
	ErrMalformedPayload = errors.New("malformed encrypted payload")
)

// EncryptAuthenticateData encrypts data with key using format and returns the
// complete payload (header, ciphertext and tag).
func EncryptAuthenticateData(key FileTransferEncryptionKey, data []byte, format EncryptionFormat) ([]byte, error) {
	logger := NewLogger("EncryptAuthenticateData").WithField("format", format.String()).WithField("data_size", len(data))

	if format != FormatChaCha20Poly1305 && format != FormatChaCha20SHA256 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncryption, format)
	}

	out := make([]byte, headerSize, headerSize+len(data)+format.tagSize())
	out[0] = byte(format)
	if _, err := rand.Read(out[1 : 1+IVSize]); err != nil {
		logger.WithError(err, "rand", "iv generation").Error("Failed to generate IV")
		return nil, fmt.Errorf("generating IV: %w", err)
	}
	binary.LittleEndian.PutUint32(out[1+IVSize:headerSize], uint32(len(data)))

	header := append([]byte(nil), out[:headerSize]...)
	iv := header[1 : 1+IVSize]

	switch format {
	case FormatChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key[:])
		if err != nil {
			return nil, err
		}
		out = aead.Seal(out, iv, data, header)
	case FormatChaCha20SHA256:
		cipher, err := chacha20.NewUnauthenticatedCipher(key[:], iv)
		if err != nil {
			return nil, err
		}
		ciphertext := make([]byte, len(data))
		cipher.XORKeyStream(ciphertext, data)
		out = append(out, ciphertext...)
		out = append(out, computeTag(key, out)...)
	}

	logger.WithField("payload_size", len(out)).Debug("Payload encrypted")
	return out, nil
}

// DecryptAuthenticateData verifies and decrypts a payload produced by
// EncryptAuthenticateData. The format is read from the payload itself.
func DecryptAuthenticateData(key FileTransferEncryptionKey, payload []byte) ([]byte, error) {
	if len(payload) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedPayload, len(payload))
	}

	format := EncryptionFormat(payload[0])
	if format != FormatChaCha20Poly1305 && format != FormatChaCha20SHA256 {
		return nil, fmt.Errorf("%w: format byte %d", ErrUnsupportedEncryption, payload[0])
	}

	length := binary.LittleEndian.Uint32(payload[1+IVSize : headerSize])
	if uint64(len(payload)) != uint64(headerSize)+uint64(length)+uint64(format.tagSize()) {
		return nil, fmt.Errorf("%w: length field %d does not match payload size %d", ErrMalformedPayload, length, len(payload))
	}

	header := payload[:headerSize]
	iv := payload[1 : 1+IVSize]
	body := payload[headerSize:]

	switch format {
	case FormatChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key[:])
		if err != nil {
			return nil, err
		}
		plaintext, err := aead.Open(nil, iv, body, header)
		if err != nil {
			return nil, ErrAuthenticationFailed
		}
		return plaintext, nil
	default:
		ciphertext := body[:length]
		tag := body[length:]
		if !hmac.Equal(tag, computeTag(key, payload[:headerSize+int(length)])) {
			return nil, ErrAuthenticationFailed
		}
		cipher, err := chacha20.NewUnauthenticatedCipher(key[:], iv)
		if err != nil {
			return nil, err
		}
		plaintext := make([]byte, length)
		cipher.XORKeyStream(plaintext, ciphertext)
		return plaintext, nil
	}
}

func computeTag(key FileTransferEncryptionKey, authenticated []byte) []byte {
	mac := hmac.New(sha256.New, key[:])
	mac.Write(authenticated)
	return mac.Sum(nil)
}
