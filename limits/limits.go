// Package limits provides centralized size limits for file transfer items.
// This ensures consistent validation across the codec, the actor and the link.
package limits

import (
	"errors"
	"fmt"
)

const (
	// ChunkSize is the granularity of a chunk map: one bit per ChunkSize bytes.
	// This matches the 1 MiB chunks used by RetroShare peers.
	ChunkSize = 1024 * 1024

	// MaxChunkSize is the default largest data request a peer may send.
	// Requests above it are dropped without reply.
	MaxChunkSize = ChunkSize

	// DefaultBlockSize is the size of the data requests the scheduler emits.
	// It keeps a data item inside a single datagram of the development link.
	DefaultBlockSize = 16 * 1024

	// EncryptionOverhead is the worst case tunnel encryption overhead:
	// format byte, 12 byte IV, 4 byte length and a 32 byte HMAC-SHA256 tag.
	EncryptionOverhead = 1 + 12 + 4 + 32

	// MaxProcessingBuffer is the absolute maximum for any decoded item.
	// This prevents memory exhaustion from forged length fields.
	MaxProcessingBuffer = 2 * ChunkSize

	// MaxTunnelPayload is the largest encrypted tunnel payload accepted.
	MaxTunnelPayload = MaxProcessingBuffer + EncryptionOverhead

	// DataItemOverhead is the encoded size of a data item without its
	// payload: item header, hash, file size, offset and payload length.
	DataItemOverhead = 8 + 20 + 8 + 8 + 4
)

var (
	// ErrMessageEmpty indicates an empty buffer was provided
	ErrMessageEmpty = errors.New("empty message")

	// ErrMessageTooLarge indicates a buffer exceeds its maximum size
	ErrMessageTooLarge = errors.New("message too large")

	// ErrChunkTooLarge indicates a data request asks for more than allowed
	ErrChunkTooLarge = errors.New("chunk size exceeds maximum allowed")
)

// ChunkCount returns ceil(size / ChunkSize), the length of a chunk map.
func ChunkCount(size uint64) uint {
	return uint((size + ChunkSize - 1) / ChunkSize)
}

// ChunkLength returns the number of bytes covered by chunk index of a file
// of the given size. The last chunk may be short.
func ChunkLength(size uint64, index uint) uint64 {
	start := uint64(index) * ChunkSize
	if start >= size {
		return 0
	}
	if size-start < ChunkSize {
		return size - start
	}
	return ChunkSize
}

// ValidateChunkRequest checks a requested chunk size against maxSize.
func ValidateChunkRequest(chunkSize uint32, maxSize uint32) error {
	if chunkSize == 0 {
		return ErrMessageEmpty
	}
	if chunkSize > maxSize {
		return fmt.Errorf("%w: requested %d exceeds limit %d", ErrChunkTooLarge, chunkSize, maxSize)
	}
	return nil
}

// ValidateMessageSize validates a buffer against the specified maximum size.
// Returns an error with context including the actual and maximum sizes.
func ValidateMessageSize(message []byte, maxSize int) error {
	if len(message) == 0 {
		return ErrMessageEmpty
	}
	if len(message) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrMessageTooLarge, len(message), maxSize)
	}
	return nil
}

// ValidateProcessingBuffer validates data against the absolute maximum (MaxProcessingBuffer).
// This limit should be used for all untrusted input.
func ValidateProcessingBuffer(data []byte) error {
	if len(data) == 0 {
		return ErrMessageEmpty
	}
	if len(data) > MaxProcessingBuffer {
		return fmt.Errorf("%w: buffer size %d exceeds limit %d", ErrMessageTooLarge, len(data), MaxProcessingBuffer)
	}
	return nil
}
