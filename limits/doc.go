// Package limits provides centralized size constants and validation functions
// for the file transfer engine.
//
// # Size Hierarchy
//
//   - ChunkSize (1 MiB): one bit of a chunk map covers this many bytes of a
//     file. A file of size S has ceil(S / ChunkSize) chunks.
//
//   - MaxChunkSize (1 MiB): the default largest data request that is served.
//     Larger requests are logged and dropped, never answered.
//
//   - DefaultBlockSize (16 KiB): the size of the requests the local scheduler
//     emits when downloading.
//
//   - MaxProcessingBuffer (2 MiB): the absolute maximum for any decoded item.
//
// # Validation Functions
//
//	if err := limits.ValidateChunkRequest(req.ChunkSize, maxChunkSize); err != nil {
//	    // errors.Is(err, limits.ErrChunkTooLarge)
//	}
//
// # Error Types
//
//   - ErrMessageEmpty: an empty buffer or a zero sized request
//   - ErrMessageTooLarge: a buffer exceeds the specified limit
//   - ErrChunkTooLarge: a data request exceeds the served maximum
package limits
