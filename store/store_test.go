package store

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/filetransfer"
	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
)

// setupTestDB initializes a temporary Badger instance for testing
func setupTestDB(t *testing.T) *badger.DB {
	db, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDownloadRepository_SaveAndLoad(t *testing.T) {
	req := require.New(t)
	repo := NewDownloadRepository(setupTestDB(t))

	first := filetransfer.Download{
		Hash:     id.Sum([]byte("first")),
		Size:     3 << 20,
		Name:     "first.bin",
		ChunkMap: item.CompressedChunkMap{0x5},
	}
	second := filetransfer.Download{
		Hash: id.Sum([]byte("second")),
		Size: 10,
	}

	req.NoError(repo.SaveDownload(first))
	req.NoError(repo.SaveDownload(second))

	downloads, err := repo.LoadDownloads()
	req.NoError(err)
	req.ElementsMatch([]filetransfer.Download{first, second}, downloads)
}

func TestDownloadRepository_SaveReplaces(t *testing.T) {
	req := require.New(t)
	repo := NewDownloadRepository(setupTestDB(t))
	download := filetransfer.Download{Hash: id.Sum([]byte("progress")), Size: 2 << 20, ChunkMap: item.CompressedChunkMap{0}}

	req.NoError(repo.SaveDownload(download))
	download.ChunkMap = item.CompressedChunkMap{0x3}
	req.NoError(repo.SaveDownload(download))

	downloads, err := repo.LoadDownloads()
	req.NoError(err)
	req.Equal([]filetransfer.Download{download}, downloads)
}

func TestDownloadRepository_Delete(t *testing.T) {
	req := require.New(t)
	repo := NewDownloadRepository(setupTestDB(t))
	hash := id.Sum([]byte("deleted"))

	req.NoError(repo.SaveDownload(filetransfer.Download{Hash: hash, Size: 1}))
	req.NoError(repo.DeleteDownload(hash))
	req.NoError(repo.DeleteDownload(hash))

	downloads, err := repo.LoadDownloads()
	req.NoError(err)
	req.Empty(downloads)
}

func TestDownloadRepository_SkipsCorruptRecords(t *testing.T) {
	req := require.New(t)
	db := setupTestDB(t)
	repo := NewDownloadRepository(db)

	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(downloadPrefix+"garbage"), []byte("{not json"))
	}))
	valid := filetransfer.Download{Hash: id.Sum([]byte("valid")), Size: 5}
	req.NoError(repo.SaveDownload(valid))

	downloads, err := repo.LoadDownloads()
	req.NoError(err)
	req.Equal([]filetransfer.Download{valid}, downloads)
}
