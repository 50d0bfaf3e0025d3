// Package filetransfer implements chunked file transfer between peers, both
// over direct connections and anonymously through overlay tunnels.
//
// # Overview
//
// The package is built around three components:
//
//   - FileCreator and FileProvider: the receiving side of a download and the
//     sending side of a shared file, each with its chunk map
//   - Manager: a single goroutine actor owning every FileCreator (leechers)
//     and FileProvider (seeders), driven by a command queue
//   - Service: the protocol side, converting inbound items into commands and
//     sending the manager's items directly or through a tunnel
//
// # Chunk Maps
//
// A chunk map has one bit per limits.ChunkSize bytes of a file. It travels as
// an item.CompressedChunkMap where bit i is bit i%32 of word i/32.
//
// # Tunnels
//
// The overlay only ever sees SHA1(hash), the hash of hash. Items sent through
// a tunnel are serialized and encrypted with a key derived from the real
// content hash:
//
//	service.InitializeTurtle(router)
//	service.Download(hash, size, "movie.mkv")
//
// Peers reported by the router as virtual are reached through tunnels, every
// other peer through the PeerWriter.
//
// # Concurrency
//
// Only Manager.Run touches the leecher and seeder tables. Every other method
// of Service is safe for concurrent use.
package filetransfer
