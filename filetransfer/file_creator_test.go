package filetransfer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/limits"
)

func newOpenCreator(t *testing.T, size uint64) *FileCreator {
	t.Helper()
	c := NewFileCreator(filepath.Join(t.TempDir(), "sub", "file.download"), size, StrategyLinear)
	require.NoError(t, c.Open())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestFileCreatorOpenAllocatesFile(t *testing.T) {
	c := newOpenCreator(t, 1234)

	info, err := os.Stat(c.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(1234), info.Size())
	assert.Equal(t, uint(1), c.Chunks())
	assert.False(t, c.IsComplete())
}

func TestFileCreatorWriteBeforeOpen(t *testing.T) {
	c := NewFileCreator(filepath.Join(t.TempDir(), "x"), 10, StrategyLinear)
	err := c.Write(id.NewLocationID(), 0, []byte("abc"))
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestFileCreatorCompletesChunkFromBlocks(t *testing.T) {
	c := newOpenCreator(t, 100)
	peer := id.NewLocationID()
	data := bytes.Repeat([]byte{0xab}, 100)

	require.NoError(t, c.Write(peer, 50, data[50:]))
	assert.False(t, c.IsComplete())
	assert.Equal(t, item.CompressedChunkMap{0}, c.CompressedChunkMap())

	// Overlapping write.
	require.NoError(t, c.Write(peer, 40, data[40:60]))
	assert.False(t, c.IsComplete())

	require.NoError(t, c.Write(peer, 0, data[:40]))
	assert.True(t, c.IsComplete())
	assert.Equal(t, item.CompressedChunkMap{1}, c.CompressedChunkMap())
	assert.Equal(t, []id.LocationID{peer}, c.Peers())

	onDisk, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}

func TestFileCreatorWriteOutOfBounds(t *testing.T) {
	c := newOpenCreator(t, 10)
	err := c.Write(id.NewLocationID(), 8, []byte("abc"))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFileCreatorReadOnlyCompletedChunks(t *testing.T) {
	size := uint64(limits.ChunkSize + 10)
	c := newOpenCreator(t, size)
	peer := id.NewLocationID()

	tail := []byte("0123456789")
	require.NoError(t, c.Write(peer, limits.ChunkSize, tail))
	assert.Equal(t, uint(1), c.CompletedChunks())

	got, err := c.Read(peer, limits.ChunkSize+2, 100)
	require.NoError(t, err)
	assert.Equal(t, tail[2:], got)

	_, err = c.Read(peer, 0, 16)
	assert.ErrorIs(t, err, ErrChunkNotAvailable)

	_, err = c.Read(peer, limits.ChunkSize-4, 8)
	assert.ErrorIs(t, err, ErrChunkNotAvailable)

	_, err = c.Read(peer, size, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFileCreatorRestore(t *testing.T) {
	size := uint64(3 * limits.ChunkSize)
	c := NewFileCreator(filepath.Join(t.TempDir(), "r"), size, StrategyLinear)
	c.Restore(item.CompressedChunkMap{0x5})

	assert.Equal(t, uint(2), c.CompletedChunks())
	chunk, ok := c.distributor.NextChunk()
	require.True(t, ok)
	assert.Equal(t, uint(1), chunk)
}

func TestFileCreatorPeerChunkMaps(t *testing.T) {
	c := NewFileCreator(filepath.Join(t.TempDir(), "p"), 2*limits.ChunkSize, StrategyLinear)
	known := id.LocationID{1}
	unknown := id.LocationID{2}

	c.SetPeerChunkMap(known, item.CompressedChunkMap{0x2})
	c.AddPeer(unknown)

	assert.Equal(t, []id.LocationID{known, unknown}, c.Peers())
	assert.Equal(t, []id.LocationID{unknown}, c.peersWithChunk(0))
	assert.Equal(t, []id.LocationID{known, unknown}, c.peersWithChunk(1))

	c.RemovePeer(unknown)
	assert.Empty(t, c.peersWithChunk(0))
}

func TestFileCreatorMissingRanges(t *testing.T) {
	c := newOpenCreator(t, 2*limits.ChunkSize)
	peer := id.NewLocationID()

	assert.Equal(t, []span{{limits.ChunkSize, 2 * limits.ChunkSize}}, c.missingRanges(1))

	require.NoError(t, c.Write(peer, limits.ChunkSize+100, make([]byte, 100)))
	assert.Equal(t, []span{
		{limits.ChunkSize, limits.ChunkSize + 100},
		{limits.ChunkSize + 200, 2 * limits.ChunkSize},
	}, c.missingRanges(1))
}

func TestSpanSet(t *testing.T) {
	var s spanSet

	assert.Equal(t, uint64(10), s.add(10, 20))
	assert.Equal(t, uint64(20), s.add(30, 40))
	assert.Equal(t, uint64(30), s.add(15, 35))
	assert.Equal(t, spanSet{{10, 40}}, s)

	assert.Equal(t, uint64(30), s.add(12, 12))
	assert.Equal(t, uint64(35), s.add(0, 5))
	assert.Equal(t, []span{{5, 10}, {40, 50}}, s.missing(50))

	assert.Equal(t, uint64(40), s.add(5, 10))
	assert.Equal(t, uint64(50), s.add(40, 50))
	assert.Equal(t, spanSet{{0, 50}}, s)
	assert.Empty(t, s.missing(50))
}

func TestValidateFileName(t *testing.T) {
	assert.NoError(t, ValidateFileName("movie.mkv"))
	assert.NoError(t, ValidateFileName("..hidden"))

	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b", `a\b`} {
		assert.ErrorIs(t, ValidateFileName(name), ErrInvalidFileName, name)
	}
}
