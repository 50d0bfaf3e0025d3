package filetransfer

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/opd-ai/rsnode/item"
)

// compressChunkMap converts the first total bits of chunkMap to their
// transmitted form.
func compressChunkMap(chunkMap *bitset.BitSet, total uint) item.CompressedChunkMap {
	compressed := make(item.CompressedChunkMap, (total+31)/32)
	for i := uint(0); i < total; i++ {
		if chunkMap.Test(i) {
			compressed[i/32] |= 1 << (i % 32)
		}
	}
	return compressed
}

// decompressChunkMap expands a transmitted chunk map to total bits. Bits past
// the end of compressed are clear and bits past total are ignored.
func decompressChunkMap(compressed item.CompressedChunkMap, total uint) *bitset.BitSet {
	chunkMap := bitset.New(total)
	for i := uint(0); i < total; i++ {
		word := i / 32
		if word >= uint(len(compressed)) {
			break
		}
		if compressed[word]&(1<<(i%32)) != 0 {
			chunkMap.Set(i)
		}
	}
	return chunkMap
}

// fullChunkMap returns a chunk map with all total bits set.
func fullChunkMap(total uint) *bitset.BitSet {
	return bitset.New(total).FlipRange(0, total)
}
