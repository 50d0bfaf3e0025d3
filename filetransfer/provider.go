package filetransfer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/limits"
)

var (
	// ErrOutOfBounds indicates an offset or range outside of the file.
	ErrOutOfBounds = errors.New("range outside of file")

	// ErrChunkNotAvailable indicates a read of data not yet downloaded.
	ErrChunkNotAvailable = errors.New("chunk not available")

	// ErrNotOpen indicates an operation on a closed transfer file.
	ErrNotOpen = errors.New("file not open")
)

// Provider is anything able to serve chunks of a file: a complete shared
// file or a download in progress.
type Provider interface {
	Read(origin id.LocationID, offset uint64, length uint32) ([]byte, error)
	CompressedChunkMap() item.CompressedChunkMap
	Size() uint64
}

// FileProvider serves a complete, locally shared file.
type FileProvider struct {
	path   string
	size   uint64
	chunks uint
	file   *os.File
}

// NewFileProvider creates a provider for the file at path. The file is
// opened on the first read.
func NewFileProvider(path string) (*FileProvider, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("sharing %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("sharing %s: is a directory", path)
	}

	size := uint64(info.Size())
	return &FileProvider{
		path:   path,
		size:   size,
		chunks: limits.ChunkCount(size),
	}, nil
}

// Read returns up to length bytes at offset.
func (p *FileProvider) Read(origin id.LocationID, offset uint64, length uint32) ([]byte, error) {
	if p.file == nil {
		file, err := os.Open(p.path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", p.path, err)
		}
		p.file = file
	}

	logrus.WithFields(logrus.Fields{
		"function": "FileProvider.Read",
		"origin":   origin.String(),
		"path":     p.path,
		"offset":   offset,
		"length":   length,
	}).Debug("Serving file data")

	return readAt(p.file, p.size, offset, length)
}

// CompressedChunkMap returns the complete chunk map of the file.
func (p *FileProvider) CompressedChunkMap() item.CompressedChunkMap {
	return compressChunkMap(fullChunkMap(p.chunks), p.chunks)
}

// Size returns the file size.
func (p *FileProvider) Size() uint64 {
	return p.size
}

// Path returns the shared file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Close releases the file handle, if any.
func (p *FileProvider) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// readAt reads min(length, size-offset) bytes at offset.
func readAt(file *os.File, size, offset uint64, length uint32) ([]byte, error) {
	if offset >= size {
		return nil, fmt.Errorf("%w: offset %d, size %d", ErrOutOfBounds, offset, size)
	}

	n := uint64(length)
	if n > size-offset {
		n = size - offset
	}

	buf := make([]byte, n)
	read, err := file.ReadAt(buf, int64(offset))
	if err != nil && !(errors.Is(err, io.EOF) && uint64(read) == n) {
		return nil, fmt.Errorf("reading %d bytes at %d: %w", n, offset, err)
	}
	return buf, nil
}
