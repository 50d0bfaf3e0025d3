package filetransfer

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(d *ChunkDistributor) []uint {
	var chunks []uint
	for {
		chunk, ok := d.NextChunk()
		if !ok {
			return chunks
		}
		chunks = append(chunks, chunk)
	}
}

func TestChunkDistributorLinearEmpty(t *testing.T) {
	chunkMap := bitset.New(4)
	d := NewChunkDistributor(chunkMap, 4, StrategyLinear)

	assert.Equal(t, []uint{0, 1, 2, 3}, drain(d))

	_, ok := d.NextChunk()
	assert.False(t, ok)
}

func TestChunkDistributorLinearSkipsPresentChunks(t *testing.T) {
	chunkMap := bitset.New(4)
	chunkMap.Set(0)
	chunkMap.Set(2)
	d := NewChunkDistributor(chunkMap, 4, StrategyLinear)

	assert.Equal(t, []uint{1, 3}, drain(d))
}

func TestChunkDistributorLinearSeesLaterUpdates(t *testing.T) {
	chunkMap := bitset.New(4)
	d := NewChunkDistributor(chunkMap, 4, StrategyLinear)

	chunk, ok := d.NextChunk()
	require.True(t, ok)
	assert.Equal(t, uint(0), chunk)

	chunkMap.Set(1)

	chunk, ok = d.NextChunk()
	require.True(t, ok)
	assert.Equal(t, uint(2), chunk)
}

func TestChunkDistributorLinearInterleavedMarking(t *testing.T) {
	chunkMap := bitset.New(4)
	d := NewChunkDistributor(chunkMap, 4, StrategyLinear)

	chunk, ok := d.NextChunk()
	require.True(t, ok)
	assert.Equal(t, uint(0), chunk)
	chunkMap.Set(0)

	chunk, ok = d.NextChunk()
	require.True(t, ok)
	assert.Equal(t, uint(1), chunk)
	chunkMap.Set(1)
	chunkMap.Set(2)

	chunk, ok = d.NextChunk()
	require.True(t, ok)
	assert.Equal(t, uint(3), chunk)
	chunkMap.Set(3)

	_, ok = d.NextChunk()
	assert.False(t, ok)
}

func TestChunkDistributorRandomFourChunks(t *testing.T) {
	d := NewChunkDistributor(bitset.New(4), 4, StrategyRandom)

	var chunks []uint
	for i := 0; i < 4; i++ {
		chunk, ok := d.NextChunk()
		require.True(t, ok, "call %d", i+1)
		chunks = append(chunks, chunk)
	}
	assert.ElementsMatch(t, []uint{0, 1, 2, 3}, chunks)

	_, ok := d.NextChunk()
	assert.False(t, ok)
}

func TestChunkDistributorRandomReturnsEveryChunkOnce(t *testing.T) {
	chunkMap := bitset.New(64)
	chunkMap.Set(5)
	chunkMap.Set(40)
	d := NewChunkDistributor(chunkMap, 64, StrategyRandom)

	chunks := drain(d)
	assert.Len(t, chunks, 62)

	seen := make(map[uint]bool)
	for _, chunk := range chunks {
		assert.False(t, seen[chunk], "chunk %d returned twice", chunk)
		assert.False(t, chunkMap.Test(chunk), "chunk %d is present", chunk)
		seen[chunk] = true
	}

	_, ok := d.NextChunk()
	assert.False(t, ok)
}

func TestChunkDistributorFullMap(t *testing.T) {
	for _, strategy := range []Strategy{StrategyLinear, StrategyRandom} {
		d := NewChunkDistributor(fullChunkMap(8), 8, strategy)
		_, ok := d.NextChunk()
		assert.False(t, ok, strategy.String())
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("random")
	require.NoError(t, err)
	assert.Equal(t, StrategyRandom, s)

	s, err = ParseStrategy("linear")
	require.NoError(t, err)
	assert.Equal(t, StrategyLinear, s)

	_, err = ParseStrategy("rarest")
	assert.Error(t, err)
}
