package rscrypto

import (
	"errors"
	"runtime"
)

// ErrNilBuffer is returned when wiping a nil slice.
var ErrNilBuffer = errors.New("cannot wipe nil buffer")

// SecureWipe overwrites data with zeroes.
func SecureWipe(data []byte) error {
	if data == nil {
		return ErrNilBuffer
	}
	clear(data)
	runtime.KeepAlive(data)
	return nil
}

// ZeroBytes wipes data, ignoring nil slices.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}
