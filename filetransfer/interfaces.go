package filetransfer

//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_filetransfer.go -package=mocks

import (
	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
)

// PeerWriter sends an item directly to a connected peer. Delivery is fire
// and forget.
type PeerWriter interface {
	WriteItem(location id.LocationID, it item.FileTransferItem)
}

// FileFinder looks up locally shared files by content hash.
type FileFinder interface {
	FindFile(hash id.Sha1Sum) (path string, ok bool)
}

// Notifier receives user visible events.
type Notifier interface {
	FoundFile(requestID uint32, name string, size uint64, hash id.Sha1Sum)
	DownloadCompleted(hash id.Sha1Sum, path string)
}

// DownloadStore persists in-progress downloads across restarts.
type DownloadStore interface {
	SaveDownload(download Download) error
	DeleteDownload(hash id.Sha1Sum) error
	LoadDownloads() ([]Download, error)
}

// Download is the persisted state of a leecher.
type Download struct {
	Hash     id.Sha1Sum              `json:"hash"`
	Size     uint64                  `json:"size"`
	Name     string                  `json:"name"`
	ChunkMap item.CompressedChunkMap `json:"chunk_map"`
}

type nopNotifier struct{}

func (nopNotifier) FoundFile(uint32, string, uint64, id.Sha1Sum) {}
func (nopNotifier) DownloadCompleted(id.Sha1Sum, string)         {}

type nopStore struct{}

func (nopStore) SaveDownload(Download) error        { return nil }
func (nopStore) DeleteDownload(id.Sha1Sum) error    { return nil }
func (nopStore) LoadDownloads() ([]Download, error) { return nil, nil }

// Sender emits the outbound items of the manager. The Service implements it
// and picks the direct or the tunnel route for every call.
type Sender interface {
	SendDataRequest(location id.LocationID, hash id.Sha1Sum, size, offset uint64, chunkSize uint32)
	SendData(location id.LocationID, hash id.Sha1Sum, size, offset uint64, data []byte)
	SendChunkMapRequest(location id.LocationID, hash id.Sha1Sum, isLeecher bool)
	SendChunkMap(location id.LocationID, hash id.Sha1Sum, isClient bool, chunkMap item.CompressedChunkMap)
	ActivateTunnels(hash id.Sha1Sum)
	DeactivateTunnels(hash id.Sha1Sum)
}
