// Package store persists in-progress downloads in BadgerDB so they survive
// a restart of the node.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/filetransfer"
	"github.com/opd-ai/rsnode/id"
)

const downloadPrefix = "download:"

// Open opens (or creates) the database in dir. An empty dir opens an
// in-memory database.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(logrus.StandardLogger())
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", dir, err)
	}
	return db, nil
}

// DownloadRepository implements filetransfer.DownloadStore on top of BadgerDB.
type DownloadRepository struct {
	db *badger.DB
}

var _ filetransfer.DownloadStore = (*DownloadRepository)(nil)

// NewDownloadRepository creates a repository using db.
func NewDownloadRepository(db *badger.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

func downloadKey(hash id.Sha1Sum) []byte {
	return []byte(downloadPrefix + hash.String())
}

// SaveDownload inserts or replaces the record of a download.
func (r *DownloadRepository) SaveDownload(download filetransfer.Download) error {
	data, err := json.Marshal(download)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(downloadKey(download.Hash), data)
	})
}

// DeleteDownload removes the record of a download. Deleting a missing record
// is not an error.
func (r *DownloadRepository) DeleteDownload(hash id.Sha1Sum) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(downloadKey(hash))
	})
}

// LoadDownloads returns every persisted download. Corrupt records are logged
// and skipped.
func (r *DownloadRepository) LoadDownloads() ([]filetransfer.Download, error) {
	var downloads []filetransfer.Download
	prefix := []byte(downloadPrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			entry := it.Item()
			err := entry.Value(func(val []byte) error {
				var download filetransfer.Download
				if err := json.Unmarshal(val, &download); err != nil {
					return err
				}
				downloads = append(downloads, download)
				return nil
			})
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "DownloadRepository.LoadDownloads",
					"key":      string(entry.KeyCopy(nil)),
					"error":    err.Error(),
				}).Warn("Skipping corrupt download record")
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during download scan: %w", err)
	}

	return downloads, nil
}
