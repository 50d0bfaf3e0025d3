package filetransfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/limits"
)

var (
	// ErrInvalidFileName indicates a download name that is not a plain file name.
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrStalePartialFile indicates a partial file that no longer matches the
	// saved progress of its download.
	ErrStalePartialFile = errors.New("partial file does not match saved progress")

	// ErrNoFreeName indicates that every candidate name for a completed
	// download is taken.
	ErrNoFreeName = errors.New("no free file name")
)

// maxNameAttempts bounds the "name (n).ext" candidates tried on a clash.
const maxNameAttempts = 1000

// FileCreator is the receiving side of one download. It is owned by the
// manager and must not be used from other goroutines.
type FileCreator struct {
	path     string
	name     string
	size     uint64
	chunks   uint
	file     *os.File
	chunkMap *bitset.BitSet

	// partial holds the byte ranges received so far of incomplete chunks.
	partial map[uint]*spanSet
	peers   map[id.LocationID]*peerState

	distributor *ChunkDistributor
	pending     map[uint]time.Time
	dirty       bool
}

type peerState struct {
	// chunkMap is nil until the peer sent its map.
	chunkMap     *bitset.BitSet
	mapRequested time.Time
}

// NewFileCreator creates the state of a download of size bytes into path.
// Nothing touches the disk before Open.
func NewFileCreator(path string, size uint64, strategy Strategy) *FileCreator {
	chunks := limits.ChunkCount(size)
	chunkMap := bitset.New(chunks)

	return &FileCreator{
		path:        path,
		size:        size,
		chunks:      chunks,
		chunkMap:    chunkMap,
		partial:     make(map[uint]*spanSet),
		peers:       make(map[id.LocationID]*peerState),
		distributor: NewChunkDistributor(chunkMap, chunks, strategy),
		pending:     make(map[uint]time.Time),
	}
}

// ValidateFileName checks that name is a plain file name that cannot escape
// the directory it is joined to.
func ValidateFileName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidFileName, name)
	}
	return nil
}

// checkPartialFile verifies that path is still a regular file of size bytes.
func checkPartialFile(path string, size uint64) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStalePartialFile, err)
	}
	if !info.Mode().IsRegular() || uint64(info.Size()) != size {
		return fmt.Errorf("%w: %s has %d bytes, expected %d", ErrStalePartialFile, path, info.Size(), size)
	}
	return nil
}

// availablePath returns dir/name, or dir/"name (n).ext" for the first n that
// is not taken. Existing files are never replaced.
func availablePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 1; n <= maxNameAttempts; n++ {
		path := filepath.Join(dir, candidate)
		_, err := os.Lstat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
	return "", fmt.Errorf("%w: %s", ErrNoFreeName, name)
}

// Restore marks the chunks of a previously saved chunk map as present.
func (c *FileCreator) Restore(chunkMap item.CompressedChunkMap) {
	restored := decompressChunkMap(chunkMap, c.chunks)
	c.chunkMap.InPlaceUnion(restored)
}

// Open creates (or reopens) the target file and sizes it.
func (c *FileCreator) Open() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FileCreator.Open",
			"path":     c.path,
			"error":    err.Error(),
		}).Error("Failed to create download directory")
		return err
	}

	file, err := os.OpenFile(c.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FileCreator.Open",
			"path":     c.path,
			"error":    err.Error(),
		}).Error("Failed to open download file")
		return err
	}

	if err := file.Truncate(int64(c.size)); err != nil {
		_ = file.Close()
		return fmt.Errorf("allocating %d bytes for %s: %w", c.size, c.path, err)
	}

	c.file = file
	return nil
}

// Write stores data at offset and marks every chunk it completes.
func (c *FileCreator) Write(origin id.LocationID, offset uint64, data []byte) error {
	if c.file == nil {
		return ErrNotOpen
	}
	if len(data) == 0 {
		return nil
	}

	end := offset + uint64(len(data))
	if end > c.size || end < offset {
		return fmt.Errorf("%w: write of %d bytes at %d, size %d", ErrOutOfBounds, len(data), offset, c.size)
	}

	if _, err := c.file.WriteAt(data, int64(offset)); err != nil {
		return fmt.Errorf("writing %d bytes at %d: %w", len(data), offset, err)
	}

	c.AddPeer(origin)

	for chunk := uint(offset / limits.ChunkSize); uint64(chunk)*limits.ChunkSize < end; chunk++ {
		if c.chunkMap.Test(chunk) {
			continue
		}
		chunkStart := uint64(chunk) * limits.ChunkSize
		chunkLength := limits.ChunkLength(c.size, chunk)

		spans, ok := c.partial[chunk]
		if !ok {
			spans = &spanSet{}
			c.partial[chunk] = spans
		}

		start := max(offset, chunkStart) - chunkStart
		stop := min(end, chunkStart+chunkLength) - chunkStart
		if spans.add(start, stop) >= chunkLength {
			c.chunkMap.Set(chunk)
			delete(c.partial, chunk)
			delete(c.pending, chunk)
		}
	}

	c.dirty = true
	return nil
}

// Read serves data from completed chunks only.
func (c *FileCreator) Read(origin id.LocationID, offset uint64, length uint32) ([]byte, error) {
	if c.file == nil {
		return nil, ErrNotOpen
	}
	if offset >= c.size {
		return nil, fmt.Errorf("%w: offset %d, size %d", ErrOutOfBounds, offset, c.size)
	}

	end := min(offset+uint64(length), c.size)
	for chunk := uint(offset / limits.ChunkSize); uint64(chunk)*limits.ChunkSize < end; chunk++ {
		if !c.chunkMap.Test(chunk) {
			return nil, fmt.Errorf("%w: chunk %d", ErrChunkNotAvailable, chunk)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "FileCreator.Read",
		"origin":   origin.String(),
		"path":     c.path,
		"offset":   offset,
		"length":   length,
	}).Debug("Serving partial download data")

	return readAt(c.file, c.size, offset, length)
}

// CompressedChunkMap returns the current, possibly partial, chunk map.
func (c *FileCreator) CompressedChunkMap() item.CompressedChunkMap {
	return compressChunkMap(c.chunkMap, c.chunks)
}

// IsComplete reports whether every chunk has been received.
func (c *FileCreator) IsComplete() bool {
	return c.chunkMap.Count() >= c.chunks
}

// CompletedChunks returns the number of chunks received.
func (c *FileCreator) CompletedChunks() uint {
	return c.chunkMap.Count()
}

// Chunks returns the length of the chunk map.
func (c *FileCreator) Chunks() uint {
	return c.chunks
}

// Size returns the total size of the download.
func (c *FileCreator) Size() uint64 {
	return c.size
}

// Path returns the path of the file being written.
func (c *FileCreator) Path() string {
	return c.path
}

// Close releases the file handle.
func (c *FileCreator) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

// AddPeer registers a peer as a source of this download.
func (c *FileCreator) AddPeer(location id.LocationID) {
	if _, ok := c.peers[location]; !ok {
		c.peers[location] = &peerState{}
	}
}

// RemovePeer forgets a source.
func (c *FileCreator) RemovePeer(location id.LocationID) {
	delete(c.peers, location)
}

// SetPeerChunkMap records the chunks a peer advertised.
func (c *FileCreator) SetPeerChunkMap(location id.LocationID, chunkMap item.CompressedChunkMap) {
	c.AddPeer(location)
	c.peers[location].chunkMap = decompressChunkMap(chunkMap, c.chunks)
}

// Peers returns the known sources, sorted.
func (c *FileCreator) Peers() []id.LocationID {
	peers := lo.Keys(c.peers)
	sort.Slice(peers, func(i, j int) bool {
		return peers[i].String() < peers[j].String()
	})
	return peers
}

// peersWithChunk returns the sources that hold chunk or whose map is unknown.
func (c *FileCreator) peersWithChunk(chunk uint) []id.LocationID {
	return lo.Filter(c.Peers(), func(location id.LocationID, _ int) bool {
		state := c.peers[location]
		return state.chunkMap == nil || state.chunkMap.Test(chunk)
	})
}

// missingRanges returns the absolute byte ranges of chunk not received yet.
func (c *FileCreator) missingRanges(chunk uint) []span {
	chunkStart := uint64(chunk) * limits.ChunkSize
	chunkLength := limits.ChunkLength(c.size, chunk)

	var gaps []span
	if spans, ok := c.partial[chunk]; ok {
		gaps = spans.missing(chunkLength)
	} else {
		gaps = []span{{0, chunkLength}}
	}

	return lo.Map(gaps, func(s span, _ int) span {
		return span{start: chunkStart + s.start, end: chunkStart + s.end}
	})
}

func (c *FileCreator) record(hash id.Sha1Sum) Download {
	return Download{
		Hash:     hash,
		Size:     c.size,
		Name:     c.name,
		ChunkMap: c.CompressedChunkMap(),
	}
}

// span is the half open byte range [start, end).
type span struct {
	start, end uint64
}

// spanSet is a sorted list of disjoint spans.
type spanSet []span

// add merges [start, end) and returns the number of bytes covered.
func (s *spanSet) add(start, end uint64) uint64 {
	if start < end {
		merged := make(spanSet, 0, len(*s)+1)
		inserted := false
		for _, cur := range *s {
			switch {
			case cur.end < start:
				merged = append(merged, cur)
			case cur.start > end:
				if !inserted {
					merged = append(merged, span{start, end})
					inserted = true
				}
				merged = append(merged, cur)
			default:
				start = min(start, cur.start)
				end = max(end, cur.end)
			}
		}
		if !inserted {
			merged = append(merged, span{start, end})
		}
		*s = merged
	}

	var covered uint64
	for _, cur := range *s {
		covered += cur.end - cur.start
	}
	return covered
}

// missing returns the gaps of [0, length).
func (s spanSet) missing(length uint64) []span {
	var gaps []span
	var pos uint64
	for _, cur := range s {
		if cur.start > pos {
			gaps = append(gaps, span{pos, cur.start})
		}
		pos = max(pos, cur.end)
	}
	if pos < length {
		gaps = append(gaps, span{pos, length})
	}
	return gaps
}
