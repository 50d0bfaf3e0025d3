package rscrypto

import (
	"errors"
	"fmt"
)

// ErrUnsupportedEncryption indicates an unknown tunnel encryption format.
var ErrUnsupportedEncryption = errors.New("unsupported encryption format")

// EncryptionFormat selects the tunnel encryption algorithm. The byte value is
// written as the first byte of every encrypted payload.
type EncryptionFormat byte

const (
	// FormatChaCha20Poly1305 is the ChaCha20-Poly1305 AEAD.
	FormatChaCha20Poly1305 EncryptionFormat = 0x01
	// FormatChaCha20SHA256 is ChaCha20 authenticated with HMAC-SHA256.
	FormatChaCha20SHA256 EncryptionFormat = 0x02
)

// ParseEncryptionFormat maps a configuration name to a format.
func ParseEncryptionFormat(name string) (EncryptionFormat, error) {
	switch name {
	case "chacha20-poly1305":
		return FormatChaCha20Poly1305, nil
	case "chacha20-sha256":
		return FormatChaCha20SHA256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncryption, name)
	}
}

// String returns the configuration name of the format.
func (f EncryptionFormat) String() string {
	switch f {
	case FormatChaCha20Poly1305:
		return "chacha20-poly1305"
	case FormatChaCha20SHA256:
		return "chacha20-sha256"
	default:
		return fmt.Sprintf("unknown(%d)", byte(f))
	}
}

func (f EncryptionFormat) tagSize() int {
	if f == FormatChaCha20SHA256 {
		return 32
	}
	return 16
}
