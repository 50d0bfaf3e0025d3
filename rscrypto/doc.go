// Package rscrypto implements the authenticated encryption used to wrap file
// transfer items before they travel through overlay tunnels.
//
// # Key Derivation
//
// The symmetric key of a file is derived from its content hash:
//
//	key := rscrypto.NewFileTransferEncryptionKey(hash) // SHA256(hash)
//
// Both ends of a tunnel know the content hash, the relays in between only see
// the hash of the hash, so the key never travels.
//
// # Formats
//
// Two formats are supported, selected once at startup:
//
//   - FormatChaCha20Poly1305 ("chacha20-poly1305"): AEAD, 16 byte tag
//   - FormatChaCha20SHA256 ("chacha20-sha256"): ChaCha20 stream cipher with an
//     HMAC-SHA256 tag (32 bytes)
//
// # Wire Layout
//
//	[format (1)][IV (12)][plaintext length (4, little endian)][ciphertext][tag]
//
// The first 17 bytes are authenticated together with the ciphertext. The
// decryption side reads the format from the first byte, so a node configured
// for one format still decrypts the other.
//
// # Secure Memory
//
// Keys and decrypted payloads are wiped with ZeroBytes once they are no longer
// needed.
package rscrypto
