package filetransfer

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/rscrypto"
	"github.com/opd-ai/rsnode/turtle"
)

// Service is the protocol side of file transfer. It turns inbound items and
// local requests into manager commands and sends the manager's items either
// directly to a peer or encrypted through an overlay tunnel.
type Service struct {
	manager     *Manager
	peers       PeerWriter
	files       FileFinder
	notifier    Notifier
	format      rscrypto.EncryptionFormat
	ownLocation id.LocationID

	mu     sync.RWMutex
	router turtle.Router
	// encryptedHashes maps the hash of hash seen by the overlay to the real
	// content hash.
	encryptedHashes map[id.Sha1Sum]id.Sha1Sum
}

var (
	_ turtle.Client = (*Service)(nil)
	_ Sender        = (*Service)(nil)
)

// NewService creates the service and its manager. An unknown tunnel
// encryption name is a configuration error.
func NewService(options *Options, peers PeerWriter, files FileFinder, store DownloadStore, notifier Notifier) (*Service, error) {
	if options == nil {
		options = NewOptions()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	format, err := rscrypto.ParseEncryptionFormat(options.TunnelEncryption)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":   "NewService",
			"encryption": options.TunnelEncryption,
			"error":      err.Error(),
		}).Error("Invalid tunnel encryption")
		return nil, fmt.Errorf("tunnel encryption: %w", err)
	}

	s := &Service{
		peers:           peers,
		files:           files,
		notifier:        notifier,
		format:          format,
		ownLocation:     options.OwnLocation,
		encryptedHashes: make(map[id.Sha1Sum]id.Sha1Sum),
	}
	s.manager = NewManager(s, store, notifier, options)

	logrus.WithFields(logrus.Fields{
		"function":   "NewService",
		"location":   options.OwnLocation.String(),
		"encryption": format.String(),
	}).Info("File transfer service created")

	return s, nil
}

// Manager returns the actor driven by the service.
func (s *Service) Manager() *Manager {
	return s.manager
}

// InitializeTurtle enables tunnel transport. Without a router every peer is
// treated as a direct one.
func (s *Service) InitializeTurtle(router turtle.Router) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router = router
}

// Run runs the manager until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	return s.manager.Run(ctx)
}

// HandleItem queues an item received from a direct peer.
func (s *Service) HandleItem(location id.LocationID, it item.FileTransferItem) {
	s.manager.Enqueue(ItemCommand{Location: location, Item: it})
}

// Download starts downloading a file, optionally from known sources.
func (s *Service) Download(hash id.Sha1Sum, size uint64, name string, sources ...id.LocationID) bool {
	return s.manager.Enqueue(ActionCommand{Action: DownloadAction{
		Hash:    hash,
		Size:    size,
		Name:    name,
		Sources: sources,
	}})
}

// RemoveDownload cancels a download.
func (s *Service) RemoveDownload(hash id.Sha1Sum) bool {
	return s.manager.Enqueue(ActionCommand{Action: RemoveDownloadAction{Hash: hash}})
}

// AddSource registers a direct peer as a source of a download.
func (s *Service) AddSource(hash id.Sha1Sum, location id.LocationID) bool {
	return s.manager.Enqueue(ActionCommand{Action: AddSourceAction{Hash: hash, Location: location}})
}

// Share seeds the file at path. Tunnel requests for it can be resolved from
// then on.
func (s *Service) Share(hash id.Sha1Sum, path string) bool {
	s.rememberHash(hash)
	return s.manager.Enqueue(ActionCommand{Action: ShareAction{Hash: hash, Path: path}})
}

// Downloads returns a snapshot of the downloads in progress.
func (s *Service) Downloads(ctx context.Context) ([]DownloadStatus, error) {
	reply := make(chan []DownloadStatus, 1)
	if !s.manager.Enqueue(ActionCommand{Action: StatusAction{Reply: reply}}) {
		return nil, fmt.Errorf("status request dropped")
	}
	select {
	case statuses := <-reply:
		return statuses, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TurtleSearch floods a search through the overlay. It returns 0 when tunnels
// are disabled.
func (s *Service) TurtleSearch(query string) uint32 {
	router := s.turtleRouter()
	if router == nil {
		return 0
	}
	return router.TurtleSearch(query, s)
}

// ActivateTunnels asks the overlay for tunnels to the holders of hash.
func (s *Service) ActivateTunnels(hash id.Sha1Sum) {
	hashOfHash := s.rememberHash(hash)
	if router := s.turtleRouter(); router != nil {
		router.StartMonitoringTunnels(hashOfHash, s, true)
	}
}

// DeactivateTunnels releases the tunnels of hash. The hash stays resolvable
// since the file may still be served.
func (s *Service) DeactivateTunnels(hash id.Sha1Sum) {
	hashOfHash := s.rememberHash(hash)
	if router := s.turtleRouter(); router != nil {
		router.StopMonitoringTunnels(hashOfHash)
	}
}

func (s *Service) rememberHash(hash id.Sha1Sum) id.Sha1Sum {
	hashOfHash := id.HashOfHash(hash)
	s.mu.Lock()
	s.encryptedHashes[hashOfHash] = hash
	s.mu.Unlock()
	return hashOfHash
}

func (s *Service) findRealHash(hashOfHash id.Sha1Sum) (id.Sha1Sum, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.encryptedHashes[hashOfHash]
	return hash, ok
}

func (s *Service) turtleRouter() turtle.Router {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.router
}

// isVirtualPeer reports whether location must be reached through a tunnel.
func (s *Service) isVirtualPeer(location id.LocationID) (turtle.Router, bool) {
	router := s.turtleRouter()
	if router == nil {
		return nil, false
	}
	return router, router.IsVirtualPeer(location)
}

// SendDataRequest asks location for chunkSize bytes at offset.
func (s *Service) SendDataRequest(location id.LocationID, hash id.Sha1Sum, size, offset uint64, chunkSize uint32) {
	if router, ok := s.isVirtualPeer(location); ok {
		s.sendTurtleItem(router, location, hash, &item.TurtleFileRequestItem{Offset: offset, ChunkSize: chunkSize})
		return
	}
	s.peers.WriteItem(location, &item.DataRequestItem{Hash: hash, Size: size, Offset: offset, ChunkSize: chunkSize})
}

// SendData sends file bytes to location.
func (s *Service) SendData(location id.LocationID, hash id.Sha1Sum, size, offset uint64, data []byte) {
	if router, ok := s.isVirtualPeer(location); ok {
		s.sendTurtleItem(router, location, hash, &item.TurtleFileDataItem{Offset: offset, Data: data})
		return
	}
	s.peers.WriteItem(location, &item.DataItem{Hash: hash, Size: size, Offset: offset, Data: data})
}

// SendChunkMapRequest asks location for its leecher or seeder map.
func (s *Service) SendChunkMapRequest(location id.LocationID, hash id.Sha1Sum, isLeecher bool) {
	if router, ok := s.isVirtualPeer(location); ok {
		s.sendTurtleItem(router, location, hash, &item.TurtleFileMapRequestItem{})
		return
	}
	s.peers.WriteItem(location, &item.ChunkMapRequestItem{Hash: hash, IsLeecher: isLeecher})
}

// SendChunkMap sends a chunk map to location.
func (s *Service) SendChunkMap(location id.LocationID, hash id.Sha1Sum, isClient bool, chunkMap item.CompressedChunkMap) {
	if router, ok := s.isVirtualPeer(location); ok {
		s.sendTurtleItem(router, location, hash, &item.TurtleFileMapItem{ChunkMap: chunkMap})
		return
	}
	s.peers.WriteItem(location, &item.ChunkMapItem{Hash: hash, IsClient: isClient, ChunkMap: chunkMap})
}

// SendSingleChunkCrcRequest asks location for the checksum of a chunk.
func (s *Service) SendSingleChunkCrcRequest(location id.LocationID, hash id.Sha1Sum, chunkNumber uint32) {
	if router, ok := s.isVirtualPeer(location); ok {
		s.sendTurtleItem(router, location, hash, &item.TurtleChunkCrcRequestItem{ChunkNumber: chunkNumber})
		return
	}
	s.peers.WriteItem(location, &item.SingleChunkCrcRequestItem{Hash: hash, ChunkNumber: chunkNumber})
}

// SendSingleChunkCrc sends the checksum of a chunk to location.
func (s *Service) SendSingleChunkCrc(location id.LocationID, hash id.Sha1Sum, chunkNumber uint32, checkSum id.Sha1Sum) {
	if router, ok := s.isVirtualPeer(location); ok {
		s.sendTurtleItem(router, location, hash, &item.TurtleChunkCrcItem{ChunkNumber: chunkNumber, CheckSum: checkSum})
		return
	}
	s.peers.WriteItem(location, &item.SingleChunkCrcItem{Hash: hash, ChunkNumber: chunkNumber, CheckSum: checkSum})
}
