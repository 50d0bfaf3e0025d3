// Package id defines the identifiers shared by every layer of the node:
// content hashes and location (node) identities.
package id

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sha1SumLength is the size of a content hash in bytes.
const Sha1SumLength = sha1.Size

// LocationIDLength is the size of a location identifier in bytes.
const LocationIDLength = 16

// ErrInvalidLength indicates that a hex identifier has the wrong size.
var ErrInvalidLength = errors.New("identifier has invalid length")

// Sha1Sum is the SHA-1 digest identifying a file's contents.
type Sha1Sum [Sha1SumLength]byte

// LocationID identifies a node (or a virtual peer behind a tunnel).
type LocationID [LocationIDLength]byte

// Sum computes the content hash of data.
func Sum(data []byte) Sha1Sum {
	return sha1.Sum(data)
}

// HashOfHash returns SHA1(hash). It is the only identifier of a file that is
// ever exposed to the overlay.
func HashOfHash(hash Sha1Sum) Sha1Sum {
	return sha1.Sum(hash[:])
}

// ParseSha1Sum decodes a 40 character hex string.
func ParseSha1Sum(s string) (Sha1Sum, error) {
	var sum Sha1Sum
	if err := decodeHex(sum[:], s); err != nil {
		return Sha1Sum{}, fmt.Errorf("sha1 sum %q: %w", s, err)
	}
	return sum, nil
}

// String returns the lowercase hex form of the hash.
func (s Sha1Sum) String() string {
	return hex.EncodeToString(s[:])
}

// IsZero reports whether the hash is all zeroes.
func (s Sha1Sum) IsZero() bool {
	return s == Sha1Sum{}
}

// MarshalText encodes the hash as hex.
func (s Sha1Sum) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a hex hash.
func (s *Sha1Sum) UnmarshalText(text []byte) error {
	parsed, err := ParseSha1Sum(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NewLocationID generates a random location identifier.
func NewLocationID() LocationID {
	return LocationID(uuid.New())
}

// ParseLocationID decodes a 32 character hex string.
func ParseLocationID(s string) (LocationID, error) {
	var loc LocationID
	if err := decodeHex(loc[:], s); err != nil {
		return LocationID{}, fmt.Errorf("location id %q: %w", s, err)
	}
	return loc, nil
}

// String returns the lowercase hex form of the location.
func (l LocationID) String() string {
	return hex.EncodeToString(l[:])
}

// IsZero reports whether the location is unset.
func (l LocationID) IsZero() bool {
	return l == LocationID{}
}

func decodeHex(dst []byte, s string) error {
	if hex.DecodedLen(len(s)) != len(dst) {
		return ErrInvalidLength
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}
