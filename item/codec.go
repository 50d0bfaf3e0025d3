package item

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/limits"
)

const (
	// HeaderSize is the size of the item header:
	// [version (1)][service (2)][subtype (1)][total size (4)].
	HeaderSize = 8

	headerVersion = 0x02
)

var (
	// ErrItemTooShort indicates a buffer shorter than its declared content.
	ErrItemTooShort = errors.New("item too short")

	// ErrUnknownItem indicates a service/subtype pair without a decoder.
	ErrUnknownItem = errors.New("unknown item type")

	// ErrBadVersion indicates an unsupported header version.
	ErrBadVersion = errors.New("unsupported item version")

	// ErrTrailingData indicates bytes left over after decoding an item.
	ErrTrailingData = errors.New("trailing data after item")
)

type itemKey struct {
	service ServiceType
	subType uint8
}

var factories = map[itemKey]func() Item{
	{ServiceFileTransfer, SubTypeDataRequest}:     func() Item { return new(DataRequestItem) },
	{ServiceFileTransfer, SubTypeData}:            func() Item { return new(DataItem) },
	{ServiceFileTransfer, SubTypeChunkMapRequest}: func() Item { return new(ChunkMapRequestItem) },
	{ServiceFileTransfer, SubTypeChunkMap}:        func() Item { return new(ChunkMapItem) },
	{ServiceFileTransfer, SubTypeChunkCrcRequest}: func() Item { return new(SingleChunkCrcRequestItem) },
	{ServiceFileTransfer, SubTypeChunkCrc}:        func() Item { return new(SingleChunkCrcItem) },
	{ServiceTurtle, SubTypeTurtleFileRequest}:     func() Item { return new(TurtleFileRequestItem) },
	{ServiceTurtle, SubTypeTurtleFileData}:        func() Item { return new(TurtleFileDataItem) },
	{ServiceTurtle, SubTypeTurtleFileMapRequest}:  func() Item { return new(TurtleFileMapRequestItem) },
	{ServiceTurtle, SubTypeTurtleFileMap}:         func() Item { return new(TurtleFileMapItem) },
	{ServiceTurtle, SubTypeTurtleChunkCrcRequest}: func() Item { return new(TurtleChunkCrcRequestItem) },
	{ServiceTurtle, SubTypeTurtleChunkCrc}:        func() Item { return new(TurtleChunkCrcItem) },
	{ServiceTurtle, SubTypeTurtleGenericData}:     func() Item { return new(TurtleGenericDataItem) },
}

// Encode serializes an item with its header.
func Encode(it Item) ([]byte, error) {
	if it == nil {
		return nil, errors.New("cannot encode nil item")
	}

	w := &writer{buf: make([]byte, HeaderSize, 64)}
	it.marshal(w)

	if len(w.buf) > limits.MaxProcessingBuffer {
		return nil, fmt.Errorf("%w: encoded size %d", limits.ErrMessageTooLarge, len(w.buf))
	}

	w.buf[0] = headerVersion
	binary.BigEndian.PutUint16(w.buf[1:3], uint16(it.Service()))
	w.buf[3] = it.SubType()
	binary.BigEndian.PutUint32(w.buf[4:8], uint32(len(w.buf)))

	return w.buf, nil
}

// Decode parses a buffer produced by Encode. The returned item does not
// share memory with data.
func Decode(data []byte) (Item, error) {
	if err := limits.ValidateProcessingBuffer(data); err != nil {
		return nil, err
	}
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrItemTooShort, len(data))
	}
	if data[0] != headerVersion {
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadVersion, data[0])
	}

	key := itemKey{
		service: ServiceType(binary.BigEndian.Uint16(data[1:3])),
		subType: data[3],
	}
	size := binary.BigEndian.Uint32(data[4:8])
	if uint64(size) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: header declares %d bytes, got %d", ErrItemTooShort, size, len(data))
	}

	factory, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/0x%02x", ErrUnknownItem, key.service, key.subType)
	}

	it := factory()
	r := &reader{buf: data[HeaderSize:]}
	it.unmarshal(r)
	if r.err != nil {
		return nil, fmt.Errorf("decoding %s/0x%02x: %w", key.service, key.subType, r.err)
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(r.buf))
	}

	return it, nil
}

type writer struct {
	buf []byte
}

func (w *writer) uint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *writer) uint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *writer) bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *writer) hash(h id.Sha1Sum) {
	w.buf = append(w.buf, h[:]...)
}

func (w *writer) bytes(b []byte) {
	w.uint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *writer) chunkMap(m CompressedChunkMap) {
	w.uint32(uint32(len(m)))
	for _, word := range m {
		w.uint32(word)
	}
}

// reader keeps the first error and returns zero values afterwards.
type reader struct {
	buf []byte
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf) < n {
		r.err = ErrItemTooShort
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func (r *reader) uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *reader) bool() bool {
	b := r.take(1)
	return b != nil && b[0] != 0
}

func (r *reader) hash() id.Sha1Sum {
	var h id.Sha1Sum
	if b := r.take(id.Sha1SumLength); b != nil {
		copy(h[:], b)
	}
	return h
}

func (r *reader) bytes() []byte {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	if uint64(n) > uint64(len(r.buf)) {
		r.err = ErrItemTooShort
		return nil
	}
	return append([]byte(nil), r.take(int(n))...)
}

func (r *reader) chunkMap() CompressedChunkMap {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	if uint64(n)*4 > uint64(len(r.buf)) {
		r.err = ErrItemTooShort
		return nil
	}
	m := make(CompressedChunkMap, n)
	for i := range m {
		m[i] = r.uint32()
	}
	return m
}
