// Package noise seals datagrams between peers of the static peer table with
// the Noise Protocol Framework.
//
// Every datagram is a complete one-way handshake of the K pattern:
//
//	K:
//	  -> s
//	  <- s
//	  ...
//	  -> e, es, ss
//
// Both static keys are known in advance, so a single message authenticates
// the sender and encrypts the payload to the recipient without any session
// state. This suits a connectionless transport where datagrams may be lost
// or reordered.
//
// # Usage
//
//	keys, err := noise.GenerateKeyPair()
//	sealed, err := noise.Seal(keys, peerPublicKey, header, payload)
//	payload, err := noise.Open(keys, senderPublicKey, header, sealed)
//
// The header passed as prologue is authenticated but not encrypted.
//
// # Limitations
//
// Sealed datagrams are not protected against replay. The file transfer
// protocol tolerates duplicated items.
package noise
