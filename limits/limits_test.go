package limits

import (
	"errors"
	"testing"
)

func TestChunkCount(t *testing.T) {
	tests := []struct {
		size uint64
		want uint
	}{
		{0, 0},
		{1, 1},
		{ChunkSize, 1},
		{ChunkSize + 1, 2},
		{4 * ChunkSize, 4},
	}

	for _, tt := range tests {
		if got := ChunkCount(tt.size); got != tt.want {
			t.Errorf("ChunkCount(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestChunkLength(t *testing.T) {
	size := uint64(2*ChunkSize + 10)

	if got := ChunkLength(size, 0); got != ChunkSize {
		t.Errorf("ChunkLength(first) = %d, want %d", got, ChunkSize)
	}
	if got := ChunkLength(size, 2); got != 10 {
		t.Errorf("ChunkLength(last) = %d, want 10", got)
	}
	if got := ChunkLength(size, 3); got != 0 {
		t.Errorf("ChunkLength(past end) = %d, want 0", got)
	}
}

func TestValidateChunkRequest(t *testing.T) {
	if err := ValidateChunkRequest(MaxChunkSize, MaxChunkSize); err != nil {
		t.Errorf("request at the limit rejected: %v", err)
	}

	err := ValidateChunkRequest(MaxChunkSize+1, MaxChunkSize)
	if !errors.Is(err, ErrChunkTooLarge) {
		t.Errorf("expected ErrChunkTooLarge, got %v", err)
	}

	if err := ValidateChunkRequest(0, MaxChunkSize); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("expected ErrMessageEmpty, got %v", err)
	}
}

func TestValidateProcessingBuffer(t *testing.T) {
	if err := ValidateProcessingBuffer(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("expected ErrMessageEmpty, got %v", err)
	}

	if err := ValidateProcessingBuffer(make([]byte, MaxProcessingBuffer+1)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, got %v", err)
	}

	if err := ValidateMessageSize([]byte{1, 2, 3}, 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateMessageSize(t *testing.T) {
	if err := ValidateMessageSize(make([]byte, MaxTunnelPayload), MaxTunnelPayload); err != nil {
		t.Errorf("payload at the limit rejected: %v", err)
	}

	err := ValidateMessageSize(make([]byte, MaxTunnelPayload+1), MaxTunnelPayload)
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, got %v", err)
	}

	if err := ValidateMessageSize(nil, MaxTunnelPayload); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("expected ErrMessageEmpty, got %v", err)
	}
}
