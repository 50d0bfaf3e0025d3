package item

import "github.com/opd-ai/rsnode/id"

// File transfer item subtypes.
const (
	SubTypeDataRequest     uint8 = 0x01
	SubTypeData            uint8 = 0x02
	SubTypeChunkMapRequest uint8 = 0x04
	SubTypeChunkMap        uint8 = 0x05
	SubTypeChunkCrcRequest uint8 = 0x08
	SubTypeChunkCrc        uint8 = 0x09
)

// DataRequestItem asks a peer for ChunkSize bytes of a file at Offset.
type DataRequestItem struct {
	Hash      id.Sha1Sum
	Size      uint64
	Offset    uint64
	ChunkSize uint32
}

// DataItem carries file bytes at Offset.
type DataItem struct {
	Hash   id.Sha1Sum
	Size   uint64
	Offset uint64
	Data   []byte
}

// ChunkMapRequestItem asks for a chunk map. IsLeecher selects the map of the
// peer's download (true) or of its share (false).
type ChunkMapRequestItem struct {
	Hash      id.Sha1Sum
	IsLeecher bool
}

// ChunkMapItem answers a ChunkMapRequestItem. IsClient is set when the map
// answers a seeder map request, i.e. it is sent to a downloading client.
type ChunkMapItem struct {
	Hash     id.Sha1Sum
	IsClient bool
	ChunkMap CompressedChunkMap
}

// SingleChunkCrcRequestItem asks for the checksum of one chunk.
type SingleChunkCrcRequestItem struct {
	Hash        id.Sha1Sum
	ChunkNumber uint32
}

// SingleChunkCrcItem carries the checksum of one chunk.
type SingleChunkCrcItem struct {
	Hash        id.Sha1Sum
	ChunkNumber uint32
	CheckSum    id.Sha1Sum
}

func (*DataRequestItem) Service() ServiceType           { return ServiceFileTransfer }
func (*DataItem) Service() ServiceType                  { return ServiceFileTransfer }
func (*ChunkMapRequestItem) Service() ServiceType       { return ServiceFileTransfer }
func (*ChunkMapItem) Service() ServiceType              { return ServiceFileTransfer }
func (*SingleChunkCrcRequestItem) Service() ServiceType { return ServiceFileTransfer }
func (*SingleChunkCrcItem) Service() ServiceType        { return ServiceFileTransfer }

func (*DataRequestItem) SubType() uint8           { return SubTypeDataRequest }
func (*DataItem) SubType() uint8                  { return SubTypeData }
func (*ChunkMapRequestItem) SubType() uint8       { return SubTypeChunkMapRequest }
func (*ChunkMapItem) SubType() uint8              { return SubTypeChunkMap }
func (*SingleChunkCrcRequestItem) SubType() uint8 { return SubTypeChunkCrcRequest }
func (*SingleChunkCrcItem) SubType() uint8        { return SubTypeChunkCrc }

func (i *DataRequestItem) FileHash() id.Sha1Sum           { return i.Hash }
func (i *DataItem) FileHash() id.Sha1Sum                  { return i.Hash }
func (i *ChunkMapRequestItem) FileHash() id.Sha1Sum       { return i.Hash }
func (i *ChunkMapItem) FileHash() id.Sha1Sum              { return i.Hash }
func (i *SingleChunkCrcRequestItem) FileHash() id.Sha1Sum { return i.Hash }
func (i *SingleChunkCrcItem) FileHash() id.Sha1Sum        { return i.Hash }

func (*DataRequestItem) isFileTransferItem()           {}
func (*DataItem) isFileTransferItem()                  {}
func (*ChunkMapRequestItem) isFileTransferItem()       {}
func (*ChunkMapItem) isFileTransferItem()              {}
func (*SingleChunkCrcRequestItem) isFileTransferItem() {}
func (*SingleChunkCrcItem) isFileTransferItem()        {}

func (i *DataRequestItem) marshal(w *writer) {
	w.hash(i.Hash)
	w.uint64(i.Size)
	w.uint64(i.Offset)
	w.uint32(i.ChunkSize)
}

func (i *DataRequestItem) unmarshal(r *reader) {
	i.Hash = r.hash()
	i.Size = r.uint64()
	i.Offset = r.uint64()
	i.ChunkSize = r.uint32()
}

func (i *DataItem) marshal(w *writer) {
	w.hash(i.Hash)
	w.uint64(i.Size)
	w.uint64(i.Offset)
	w.bytes(i.Data)
}

func (i *DataItem) unmarshal(r *reader) {
	i.Hash = r.hash()
	i.Size = r.uint64()
	i.Offset = r.uint64()
	i.Data = r.bytes()
}

func (i *ChunkMapRequestItem) marshal(w *writer) {
	w.hash(i.Hash)
	w.bool(i.IsLeecher)
}

func (i *ChunkMapRequestItem) unmarshal(r *reader) {
	i.Hash = r.hash()
	i.IsLeecher = r.bool()
}

func (i *ChunkMapItem) marshal(w *writer) {
	w.hash(i.Hash)
	w.bool(i.IsClient)
	w.chunkMap(i.ChunkMap)
}

func (i *ChunkMapItem) unmarshal(r *reader) {
	i.Hash = r.hash()
	i.IsClient = r.bool()
	i.ChunkMap = r.chunkMap()
}

func (i *SingleChunkCrcRequestItem) marshal(w *writer) {
	w.hash(i.Hash)
	w.uint32(i.ChunkNumber)
}

func (i *SingleChunkCrcRequestItem) unmarshal(r *reader) {
	i.Hash = r.hash()
	i.ChunkNumber = r.uint32()
}

func (i *SingleChunkCrcItem) marshal(w *writer) {
	w.hash(i.Hash)
	w.uint32(i.ChunkNumber)
	w.hash(i.CheckSum)
}

func (i *SingleChunkCrcItem) unmarshal(r *reader) {
	i.Hash = r.hash()
	i.ChunkNumber = r.uint32()
	i.CheckSum = r.hash()
}
