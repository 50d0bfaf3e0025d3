package rscrypto

import (
	"crypto/sha256"

	"github.com/opd-ai/rsnode/id"
)

// KeySize is the size of a file transfer encryption key.
const KeySize = sha256.Size

// FileTransferEncryptionKey is the symmetric key protecting tunnel traffic
// for one file.
type FileTransferEncryptionKey [KeySize]byte

// NewFileTransferEncryptionKey derives the key of a file from its content hash.
func NewFileTransferEncryptionKey(hash id.Sha1Sum) FileTransferEncryptionKey {
	return FileTransferEncryptionKey(sha256.Sum256(hash[:]))
}

// Wipe erases the key material.
func (k *FileTransferEncryptionKey) Wipe() {
	ZeroBytes(k[:])
}
