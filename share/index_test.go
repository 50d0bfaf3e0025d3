package share

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/id"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestIndex_Scan(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Linux Distro.iso"), "iso image")
	writeFile(t, filepath.Join(dir, "music", "song.ogg"), "la la la")
	writeFile(t, filepath.Join(dir, ".hidden"), "secret")
	writeFile(t, filepath.Join(dir, ".cache", "blob"), "cached")
	writeFile(t, filepath.Join(dir, "abc.download"), "partial")

	index := NewIndex()
	added, err := index.Scan(dir)
	req.NoError(err)
	req.Len(added, 2)

	files := index.Files()
	req.Len(files, 2)
	req.Equal("Linux Distro.iso", files[0].Name)
	req.Equal(id.Sum([]byte("iso image")), files[0].Hash)
	req.Equal(uint64(9), files[0].Size)
	req.Equal("song.ogg", files[1].Name)

	path, ok := index.FindFile(id.Sum([]byte("la la la")))
	req.True(ok)
	req.Equal(filepath.Join(dir, "music", "song.ogg"), path)

	_, ok = index.FindFile(id.Sum([]byte("secret")))
	req.False(ok)
}

func TestIndex_ScanMissingDirectory(t *testing.T) {
	_, err := NewIndex().Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestIndex_Search(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Linux Distro.iso"), "iso image")
	writeFile(t, filepath.Join(dir, "linux-notes.txt"), "notes")

	index := NewIndex()
	_, err := index.Scan(dir)
	req.NoError(err)

	req.Len(index.Search("LINUX"), 2)
	found := index.Search("linux iso")
	req.Len(found, 1)
	req.Equal("Linux Distro.iso", found[0].Name)
	req.Empty(index.Search("   "))
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	writeFile(t, path, "content")

	hash, size, err := HashFile(path)
	require.NoError(t, err)
	require.Equal(t, id.Sum([]byte("content")), hash)
	require.Equal(t, uint64(7), size)
}
