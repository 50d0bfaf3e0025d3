// Package share indexes the files a node offers to its peers.
package share

import (
	"crypto/sha1"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/filetransfer"
	"github.com/opd-ai/rsnode/id"
)

// File is one indexed file.
type File struct {
	Hash id.Sha1Sum
	Path string
	Name string
	Size uint64
}

// Index maps content hashes to shared files. It is safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	files map[id.Sha1Sum]File
}

var _ filetransfer.FileFinder = (*Index)(nil)

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{files: make(map[id.Sha1Sum]File)}
}

// HashFile computes the content hash of the file at path.
func HashFile(path string) (id.Sha1Sum, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return id.Sha1Sum{}, 0, err
	}
	defer f.Close()

	h := sha1.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return id.Sha1Sum{}, 0, fmt.Errorf("hashing %s: %w", path, err)
	}

	var sum id.Sha1Sum
	copy(sum[:], h.Sum(nil))
	return sum, uint64(n), nil
}

// Add hashes and indexes a single file.
func (x *Index) Add(path string) (File, error) {
	hash, size, err := HashFile(path)
	if err != nil {
		return File{}, err
	}

	file := File{Hash: hash, Path: path, Name: filepath.Base(path), Size: size}
	x.mu.Lock()
	x.files[hash] = file
	x.mu.Unlock()
	return file, nil
}

// Scan indexes every regular file under dir. Hidden files and in-progress
// downloads are skipped. Unreadable files are logged and skipped.
func (x *Index) Scan(dir string) ([]File, error) {
	var added []File

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasSuffix(name, filetransfer.DownloadExtension) {
			return nil
		}

		file, err := x.Add(path)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Index.Scan",
				"path":     path,
				"error":    err.Error(),
			}).Warn("Skipping unreadable file")
			return nil
		}
		added = append(added, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Index.Scan",
		"dir":      dir,
		"files":    len(added),
		"bytes":    lo.SumBy(added, func(f File) uint64 { return f.Size }),
	}).Info("Share directory indexed")

	return added, nil
}

// FindFile returns the path of the file with the given hash.
func (x *Index) FindFile(hash id.Sha1Sum) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	file, ok := x.files[hash]
	return file.Path, ok
}

// Files returns every indexed file sorted by name.
func (x *Index) Files() []File {
	x.mu.RLock()
	files := lo.Values(x.files)
	x.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files
}

// Search returns the indexed files whose name contains every word of query,
// ignoring case.
func (x *Index) Search(query string) []File {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}
	return lo.Filter(x.Files(), func(f File, _ int) bool {
		name := strings.ToLower(f.Name)
		return lo.EveryBy(words, func(word string) bool {
			return strings.Contains(name, word)
		})
	})
}
