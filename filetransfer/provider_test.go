package filetransfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
)

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shared.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFileProviderRead(t *testing.T) {
	path := writeTestFile(t, []byte("Hello, file transfer!"))
	p, err := NewFileProvider(path)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, uint64(21), p.Size())
	assert.Equal(t, path, p.Path())

	data, err := p.Read(id.NewLocationID(), 7, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("file"), data)

	// Reads are clamped to the end of the file.
	data, err = p.Read(id.NewLocationID(), 15, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("nsfer!"), data)

	_, err = p.Read(id.NewLocationID(), 21, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFileProviderChunkMapIsFull(t *testing.T) {
	p, err := NewFileProvider(writeTestFile(t, make([]byte, 10)))
	require.NoError(t, err)
	assert.Equal(t, item.CompressedChunkMap{1}, p.CompressedChunkMap())
}

func TestNewFileProviderErrors(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileProvider(t.TempDir())
	assert.Error(t, err)
}
