package noise

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/flynn/noise"
	"golang.org/x/crypto/curve25519"
)

// KeySize is the size of a Curve25519 key.
const KeySize = 32

// Overhead is the size added to a payload by Seal: an ephemeral public key
// and an authentication tag.
const Overhead = KeySize + 16

var (
	// ErrInvalidKey indicates a key that is not 32 bytes long.
	ErrInvalidKey = errors.New("invalid noise key")
	// ErrOpenFailed indicates a datagram that does not authenticate.
	ErrOpenFailed = errors.New("failed to open sealed message")
)

var cipherSuite = noise.NewCipherSuite(noise.DH25519, noise.CipherChaChaPoly, noise.HashSHA256)

// KeyPair is a static Curve25519 key pair.
type KeyPair struct {
	Private [KeySize]byte
	Public  [KeySize]byte
}

// GenerateKeyPair creates a random key pair.
func GenerateKeyPair() (*KeyPair, error) {
	dh, err := cipherSuite.GenerateKeypair(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	kp := &KeyPair{}
	copy(kp.Private[:], dh.Private)
	copy(kp.Public[:], dh.Public)
	return kp, nil
}

// KeyPairFromPrivate derives the key pair of a private key.
func KeyPairFromPrivate(private []byte) (*KeyPair, error) {
	if len(private) != KeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidKey, KeySize, len(private))
	}
	public, err := curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	kp := &KeyPair{}
	copy(kp.Private[:], private)
	copy(kp.Public[:], public)
	return kp, nil
}

// ParseKey decodes a hex encoded key.
func ParseKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}
	return key, nil
}

// Wipe clears the private key.
func (kp *KeyPair) Wipe() {
	for i := range kp.Private {
		kp.Private[i] = 0
	}
}

func (kp *KeyPair) dhKey() noise.DHKey {
	return noise.DHKey{
		Private: append([]byte(nil), kp.Private[:]...),
		Public:  append([]byte(nil), kp.Public[:]...),
	}
}

func newHandshake(local *KeyPair, remote, prologue []byte, initiator bool) (*noise.HandshakeState, error) {
	if len(remote) != KeySize {
		return nil, fmt.Errorf("%w: peer key must be %d bytes, got %d", ErrInvalidKey, KeySize, len(remote))
	}
	return noise.NewHandshakeState(noise.Config{
		CipherSuite:   cipherSuite,
		Random:        rand.Reader,
		Pattern:       noise.HandshakeK,
		Initiator:     initiator,
		Prologue:      prologue,
		StaticKeypair: local.dhKey(),
		PeerStatic:    append([]byte(nil), remote...),
	})
}

// Seal encrypts payload from local to the owner of remote. The prologue is
// authenticated and must be passed unchanged to Open.
func Seal(local *KeyPair, remote, prologue, payload []byte) ([]byte, error) {
	hs, err := newHandshake(local, remote, prologue, true)
	if err != nil {
		return nil, err
	}
	message, _, _, err := hs.WriteMessage(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to seal message: %w", err)
	}
	return message, nil
}

// Open authenticates a message sealed by the owner of remote to local and
// returns its payload.
func Open(local *KeyPair, remote, prologue, message []byte) ([]byte, error) {
	hs, err := newHandshake(local, remote, prologue, false)
	if err != nil {
		return nil, err
	}
	payload, _, _, err := hs.ReadMessage(nil, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	return payload, nil
}
