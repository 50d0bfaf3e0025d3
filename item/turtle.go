package item

import "github.com/opd-ai/rsnode/id"

// Turtle item subtypes.
const (
	SubTypeTurtleFileRequest     uint8 = 0x07
	SubTypeTurtleFileData        uint8 = 0x08
	SubTypeTurtleGenericData     uint8 = 0x0a
	SubTypeTurtleFileMap         uint8 = 0x10
	SubTypeTurtleFileMapRequest  uint8 = 0x11
	SubTypeTurtleChunkCrc        uint8 = 0x14
	SubTypeTurtleChunkCrcRequest uint8 = 0x15
)

// TurtleFileRequestItem is the tunnel form of DataRequestItem.
type TurtleFileRequestItem struct {
	Offset    uint64
	ChunkSize uint32
}

// TurtleFileDataItem is the tunnel form of DataItem.
type TurtleFileDataItem struct {
	Offset uint64
	Data   []byte
}

// TurtleFileMapRequestItem is the tunnel form of ChunkMapRequestItem. The
// requested role follows from the tunnel direction.
type TurtleFileMapRequestItem struct{}

// TurtleFileMapItem is the tunnel form of ChunkMapItem.
type TurtleFileMapItem struct {
	ChunkMap CompressedChunkMap
}

// TurtleChunkCrcRequestItem is the tunnel form of SingleChunkCrcRequestItem.
type TurtleChunkCrcRequestItem struct {
	ChunkNumber uint32
}

// TurtleChunkCrcItem is the tunnel form of SingleChunkCrcItem.
type TurtleChunkCrcItem struct {
	ChunkNumber uint32
	CheckSum    id.Sha1Sum
}

// TurtleGenericDataItem carries an encrypted, serialized tunnel item.
type TurtleGenericDataItem struct {
	TunnelData []byte
}

// Clone returns a copy that shares no memory with i.
func (i *TurtleGenericDataItem) Clone() *TurtleGenericDataItem {
	return &TurtleGenericDataItem{TunnelData: append([]byte(nil), i.TunnelData...)}
}

func (*TurtleFileRequestItem) Service() ServiceType     { return ServiceTurtle }
func (*TurtleFileDataItem) Service() ServiceType        { return ServiceTurtle }
func (*TurtleFileMapRequestItem) Service() ServiceType  { return ServiceTurtle }
func (*TurtleFileMapItem) Service() ServiceType         { return ServiceTurtle }
func (*TurtleChunkCrcRequestItem) Service() ServiceType { return ServiceTurtle }
func (*TurtleChunkCrcItem) Service() ServiceType        { return ServiceTurtle }
func (*TurtleGenericDataItem) Service() ServiceType     { return ServiceTurtle }

func (*TurtleFileRequestItem) SubType() uint8     { return SubTypeTurtleFileRequest }
func (*TurtleFileDataItem) SubType() uint8        { return SubTypeTurtleFileData }
func (*TurtleFileMapRequestItem) SubType() uint8  { return SubTypeTurtleFileMapRequest }
func (*TurtleFileMapItem) SubType() uint8         { return SubTypeTurtleFileMap }
func (*TurtleChunkCrcRequestItem) SubType() uint8 { return SubTypeTurtleChunkCrcRequest }
func (*TurtleChunkCrcItem) SubType() uint8        { return SubTypeTurtleChunkCrc }
func (*TurtleGenericDataItem) SubType() uint8     { return SubTypeTurtleGenericData }

func (*TurtleFileRequestItem) isTunnelItem()     {}
func (*TurtleFileDataItem) isTunnelItem()        {}
func (*TurtleFileMapRequestItem) isTunnelItem()  {}
func (*TurtleFileMapItem) isTunnelItem()         {}
func (*TurtleChunkCrcRequestItem) isTunnelItem() {}
func (*TurtleChunkCrcItem) isTunnelItem()        {}
func (*TurtleGenericDataItem) isTunnelItem()     {}

func (i *TurtleFileRequestItem) marshal(w *writer) {
	w.uint64(i.Offset)
	w.uint32(i.ChunkSize)
}

func (i *TurtleFileRequestItem) unmarshal(r *reader) {
	i.Offset = r.uint64()
	i.ChunkSize = r.uint32()
}

func (i *TurtleFileDataItem) marshal(w *writer) {
	w.uint64(i.Offset)
	w.bytes(i.Data)
}

func (i *TurtleFileDataItem) unmarshal(r *reader) {
	i.Offset = r.uint64()
	i.Data = r.bytes()
}

func (*TurtleFileMapRequestItem) marshal(*writer)   {}
func (*TurtleFileMapRequestItem) unmarshal(*reader) {}

func (i *TurtleFileMapItem) marshal(w *writer) {
	w.chunkMap(i.ChunkMap)
}

func (i *TurtleFileMapItem) unmarshal(r *reader) {
	i.ChunkMap = r.chunkMap()
}

func (i *TurtleChunkCrcRequestItem) marshal(w *writer) {
	w.uint32(i.ChunkNumber)
}

func (i *TurtleChunkCrcRequestItem) unmarshal(r *reader) {
	i.ChunkNumber = r.uint32()
}

func (i *TurtleChunkCrcItem) marshal(w *writer) {
	w.uint32(i.ChunkNumber)
	w.hash(i.CheckSum)
}

func (i *TurtleChunkCrcItem) unmarshal(r *reader) {
	i.ChunkNumber = r.uint32()
	i.CheckSum = r.hash()
}

func (i *TurtleGenericDataItem) marshal(w *writer) {
	w.bytes(i.TunnelData)
}

func (i *TurtleGenericDataItem) unmarshal(r *reader) {
	i.TunnelData = r.bytes()
}
