package item

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/limits"
)

func TestEncodeHeader(t *testing.T) {
	req := &DataRequestItem{Hash: id.Sum([]byte("file")), Size: 10, Offset: 4, ChunkSize: 6}

	data, err := Encode(req)
	require.NoError(t, err)

	assert.Equal(t, byte(headerVersion), data[0])
	assert.Equal(t, uint16(ServiceFileTransfer), binary.BigEndian.Uint16(data[1:3]))
	assert.Equal(t, SubTypeDataRequest, data[3])
	assert.Equal(t, uint32(len(data)), binary.BigEndian.Uint32(data[4:8]))
	assert.Len(t, data, HeaderSize+id.Sha1SumLength+8+8+4)
}

func TestDecodeReturnsSameItem(t *testing.T) {
	hash := id.Sum([]byte("file"))
	items := []Item{
		&DataItem{Hash: hash, Size: 3, Offset: 0, Data: []byte{1, 2, 3}},
		&ChunkMapItem{Hash: hash, IsClient: true, ChunkMap: CompressedChunkMap{0xffffffff, 0x3}},
		&TurtleFileMapRequestItem{},
		&TurtleChunkCrcItem{ChunkNumber: 7, CheckSum: hash},
	}

	for _, it := range items {
		data, err := Encode(it)
		require.NoError(t, err)

		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, it, decoded)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	data, err := Encode(&TurtleGenericDataItem{TunnelData: []byte{9, 9, 9}})
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, []byte{9, 9, 9}, decoded.(*TurtleGenericDataItem).TunnelData)
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Encode(&ChunkMapRequestItem{Hash: id.Sum([]byte("x")), IsLeecher: true})
	require.NoError(t, err)

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(valid[:len(valid)-1])
		assert.ErrorIs(t, err, ErrItemTooShort)
	})

	t.Run("bad version", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0] = 0x01
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrBadVersion)
	})

	t.Run("unknown subtype", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[3] = 0x7f
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnknownItem)
	})

	t.Run("trailing data", func(t *testing.T) {
		bad := append(append([]byte(nil), valid...), 0)
		binary.BigEndian.PutUint32(bad[4:8], uint32(len(bad)))
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("forged length", func(t *testing.T) {
		data, err := Encode(&TurtleFileDataItem{Offset: 1, Data: []byte{1, 2}})
		require.NoError(t, err)
		binary.BigEndian.PutUint32(data[HeaderSize+8:], 0xffffff)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrItemTooShort)
	})
}

func TestItemFamilies(t *testing.T) {
	var direct FileTransferItem = &SingleChunkCrcRequestItem{Hash: id.Sum([]byte("a"))}
	assert.Equal(t, ServiceFileTransfer, direct.Service())
	assert.Equal(t, id.Sum([]byte("a")), direct.FileHash())

	var tunnel TunnelItem = &TurtleFileRequestItem{}
	assert.Equal(t, ServiceTurtle, tunnel.Service())
}

func TestGenericDataClone(t *testing.T) {
	original := &TurtleGenericDataItem{TunnelData: []byte{1, 2}}
	clone := original.Clone()
	clone.TunnelData[0] = 42

	assert.Equal(t, byte(1), original.TunnelData[0])
}

func TestDataItemOverhead(t *testing.T) {
	data, err := Encode(&DataItem{Hash: id.Sum([]byte("file")), Size: 100, Offset: 10, Data: make([]byte, 37)})
	require.NoError(t, err)
	assert.Len(t, data, limits.DataItemOverhead+37)
}
