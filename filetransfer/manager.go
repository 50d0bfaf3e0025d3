package filetransfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/limits"
)

// Manager is the file transfer actor. All leecher and seeder state is owned
// by the goroutine running Run; other goroutines reach it through Enqueue.
type Manager struct {
	sender       Sender
	store        DownloadStore
	notifier     Notifier
	options      *Options
	timeProvider TimeProvider

	queue chan Command

	leechers map[id.Sha1Sum]*FileCreator
	seeders  map[id.Sha1Sum]*FileProvider
	// seeding mirrors the keys of seeders for readers outside the actor.
	seeding hashSet
}

// hashSet is a set of hashes safe for concurrent use.
type hashSet struct {
	mu     sync.RWMutex
	hashes map[id.Sha1Sum]struct{}
}

func (s *hashSet) add(hash id.Sha1Sum) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hashes == nil {
		s.hashes = make(map[id.Sha1Sum]struct{})
	}
	s.hashes[hash] = struct{}{}
}

func (s *hashSet) contains(hash id.Sha1Sum) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hashes[hash]
	return ok
}

// NewManager creates a manager. A nil store or notifier disables persistence
// or notifications.
func NewManager(sender Sender, store DownloadStore, notifier Notifier, options *Options) *Manager {
	if options == nil {
		options = NewOptions()
	}
	if store == nil {
		store = nopStore{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewManager",
		"incoming":   options.IncomingDirectory,
		"strategy":   options.Strategy.String(),
		"queue_size": options.QueueSize,
	}).Info("Creating file transfer manager")

	return &Manager{
		sender:       sender,
		store:        store,
		notifier:     notifier,
		options:      options,
		timeProvider: DefaultTimeProvider{},
		queue:        make(chan Command, options.QueueSize),
		leechers:     make(map[id.Sha1Sum]*FileCreator),
		seeders:      make(map[id.Sha1Sum]*FileProvider),
	}
}

// SetTimeProvider replaces the clock used for request timeouts. It must be
// called before Run.
func (m *Manager) SetTimeProvider(tp TimeProvider) {
	if tp == nil {
		tp = DefaultTimeProvider{}
	}
	m.timeProvider = tp
}

// Enqueue hands a command to the actor without blocking. It returns false
// when the queue is full and the command was dropped.
func (m *Manager) Enqueue(cmd Command) bool {
	select {
	case m.queue <- cmd:
		return true
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Manager.Enqueue",
			"command":  describeCommand(cmd),
		}).Warn("Command queue full, dropping command")
		return false
	}
}

// Run processes commands until ctx is done and returns ctx.Err().
func (m *Manager) Run(ctx context.Context) error {
	m.restoreDownloads()

	ticker := time.NewTicker(m.options.TickInterval)
	defer ticker.Stop()

	logrus.WithFields(logrus.Fields{
		"function": "Manager.Run",
	}).Info("File transfer manager started")

	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return ctx.Err()
		case cmd := <-m.queue:
			m.processCommand(cmd)
		case <-ticker.C:
			m.schedule()
		}
	}
}

func (m *Manager) processCommand(cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Manager.processCommand",
				"command":  describeCommand(cmd),
				"panic":    fmt.Sprint(r),
			}).Error("Command processing panicked")
		}
	}()

	switch c := cmd.(type) {
	case ItemCommand:
		m.handleItem(c.Location, c.Item)
	case ActionCommand:
		m.handleAction(c.Action)
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Manager.processCommand",
			"command":  describeCommand(cmd),
		}).Error("Unknown command")
	}
}

func (m *Manager) handleAction(action Action) {
	switch a := action.(type) {
	case DownloadAction:
		m.download(Download{Hash: a.Hash, Size: a.Size, Name: a.Name}, a.Sources)
	case RemoveDownloadAction:
		m.removeDownload(a.Hash)
	case ShareAction:
		m.share(a.Hash, a.Path)
	case AddSourceAction:
		if c, ok := lookupOrLog(m.leechers, a.Hash, "Manager.addSource", "No download for source"); ok {
			c.AddPeer(a.Location)
		}
	case RemoveSourceAction:
		if c, ok := m.leechers[a.Hash]; ok {
			c.RemovePeer(a.Location)
		}
	case StatusAction:
		m.status(a.Reply)
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Manager.handleAction",
			"action":   fmt.Sprintf("%T", action),
		}).Error("Unknown action")
	}
}

func (m *Manager) handleItem(location id.LocationID, it item.FileTransferItem) {
	switch i := it.(type) {
	case *item.DataRequestItem:
		m.handleDataRequest(location, i)
	case *item.DataItem:
		m.handleData(location, i)
	case *item.ChunkMapRequestItem:
		m.handleChunkMapRequest(location, i)
	case *item.ChunkMapItem:
		m.handleChunkMap(location, i)
	case *item.SingleChunkCrcRequestItem, *item.SingleChunkCrcItem:
		logrus.WithFields(logrus.Fields{
			"function": "Manager.handleItem",
			"location": location.String(),
			"hash":     it.FileHash().String(),
		}).Debug("Chunk CRC items are not supported, ignoring")
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Manager.handleItem",
			"location": location.String(),
			"item":     fmt.Sprintf("%T", it),
		}).Warn("Unknown file transfer item")
	}
}

// download creates a leecher unless one exists for the hash. The record is
// persisted only once the file could be opened.
func (m *Manager) download(d Download, sources []id.LocationID) {
	logger := logrus.WithFields(logrus.Fields{
		"function": "Manager.download",
		"hash":     d.Hash.String(),
		"size":     d.Size,
	})

	if c, ok := m.leechers[d.Hash]; ok {
		logger.Debug("Download already in progress")
		for _, source := range sources {
			c.AddPeer(source)
		}
		return
	}
	if _, ok := m.seeders[d.Hash]; ok {
		logger.Debug("File already available, not downloading")
		return
	}
	if d.Name != "" {
		if err := ValidateFileName(d.Name); err != nil {
			logger.WithError(err).Warn("Rejecting download")
			return
		}
	}

	path := filepath.Join(m.options.IncomingDirectory, d.Hash.String()+DownloadExtension)
	c := NewFileCreator(path, d.Size, m.options.Strategy)
	c.name = d.Name
	if d.ChunkMap != nil {
		if err := checkPartialFile(path, d.Size); err != nil {
			logger.WithError(err).Warn("Discarding saved progress, restarting download")
		} else {
			c.Restore(d.ChunkMap)
		}
	}
	if err := c.Open(); err != nil {
		logger.WithError(err).Error("Failed to open download, dropping")
		return
	}

	m.leechers[d.Hash] = c
	for _, source := range sources {
		c.AddPeer(source)
	}
	if err := m.store.SaveDownload(c.record(d.Hash)); err != nil {
		logger.WithError(err).Warn("Failed to persist download")
	}

	logger.WithFields(logrus.Fields{
		"path":    path,
		"chunks":  c.Chunks(),
		"present": c.CompletedChunks(),
	}).Info("Download started")

	if c.IsComplete() {
		m.completeDownload(d.Hash, c)
		return
	}
	m.sender.ActivateTunnels(d.Hash)
}

func (m *Manager) restoreDownloads() {
	downloads, err := m.store.LoadDownloads()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Manager.restoreDownloads",
			"error":    err.Error(),
		}).Error("Failed to load persisted downloads")
		return
	}
	for _, d := range downloads {
		m.download(d, nil)
	}
}

func (m *Manager) removeDownload(hash id.Sha1Sum) {
	c, ok := lookupOrLog(m.leechers, hash, "Manager.removeDownload", "No download to remove")
	if !ok {
		return
	}

	logger := logrus.WithFields(logrus.Fields{
		"function": "Manager.removeDownload",
		"hash":     hash.String(),
	})

	delete(m.leechers, hash)
	if err := c.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close download file")
	}
	if err := os.Remove(c.Path()); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("Failed to remove partial file")
	}
	if err := m.store.DeleteDownload(hash); err != nil {
		logger.WithError(err).Warn("Failed to delete persisted download")
	}
	m.sender.DeactivateTunnels(hash)

	logger.Info("Download removed")
}

func (m *Manager) share(hash id.Sha1Sum, path string) {
	logger := logrus.WithFields(logrus.Fields{
		"function": "Manager.share",
		"hash":     hash.String(),
		"path":     path,
	})

	if _, ok := m.seeders[hash]; ok {
		logger.Debug("File already shared")
		return
	}
	p, err := NewFileProvider(path)
	if err != nil {
		logger.WithError(err).Warn("Failed to share file")
		return
	}
	m.addSeeder(hash, p)
	logger.WithField("size", p.Size()).Info("File shared")
}

func (m *Manager) completeDownload(hash id.Sha1Sum, c *FileCreator) {
	logger := logrus.WithFields(logrus.Fields{
		"function": "Manager.completeDownload",
		"hash":     hash.String(),
	})

	delete(m.leechers, hash)
	if err := c.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close download file")
	}

	name := c.name
	if name == "" {
		name = hash.String()
	}
	path, err := availablePath(m.options.IncomingDirectory, name)
	if err == nil {
		err = os.Rename(c.Path(), path)
	}
	if err != nil {
		logger.WithError(err).Error("Failed to move completed download, keeping temporary name")
		path = c.Path()
	}

	if p, err := NewFileProvider(path); err != nil {
		logger.WithError(err).Warn("Failed to seed completed download")
	} else {
		m.addSeeder(hash, p)
	}
	if err := m.store.DeleteDownload(hash); err != nil {
		logger.WithError(err).Warn("Failed to delete persisted download")
	}
	m.sender.DeactivateTunnels(hash)
	m.notifier.DownloadCompleted(hash, path)

	logger.WithField("path", path).Info("Download completed")
}

func (m *Manager) handleDataRequest(location id.LocationID, req *item.DataRequestItem) {
	logger := logrus.WithFields(logrus.Fields{
		"function": "Manager.handleDataRequest",
		"location": location.String(),
		"hash":     req.Hash.String(),
		"offset":   req.Offset,
		"length":   req.ChunkSize,
	})

	if location == m.options.OwnLocation {
		logger.Debug("Data request from own location, not serving")
		return
	}

	provider, ok := m.provider(req.Hash)
	if !ok {
		logger.Debug("No provider for data request, dropping")
		return
	}
	if req.Size != 0 && req.Size != provider.Size() {
		logger.WithFields(logrus.Fields{
			"requested_size": req.Size,
			"local_size":     provider.Size(),
		}).Debug("Requested file size differs from local file, answering with local size")
	}
	if err := limits.ValidateChunkRequest(req.ChunkSize, m.options.MaxChunkSize); err != nil {
		logger.WithError(err).Warn("Rejecting data request")
		return
	}

	data, err := provider.Read(location, req.Offset, req.ChunkSize)
	if err != nil {
		logger.WithError(err).Warn("Failed to read requested data")
		return
	}
	m.sender.SendData(location, req.Hash, provider.Size(), req.Offset, data)
}

func (m *Manager) addSeeder(hash id.Sha1Sum, p *FileProvider) {
	m.seeders[hash] = p
	m.seeding.add(hash)
}

// IsSeeding reports whether the manager serves the complete file of hash.
// It is safe to call from any goroutine.
func (m *Manager) IsSeeding(hash id.Sha1Sum) bool {
	return m.seeding.contains(hash)
}

// provider returns the leecher for hash, or else the seeder.
func (m *Manager) provider(hash id.Sha1Sum) (Provider, bool) {
	if c, ok := m.leechers[hash]; ok {
		return c, true
	}
	if p, ok := m.seeders[hash]; ok {
		return p, true
	}
	return nil, false
}

func (m *Manager) handleData(location id.LocationID, data *item.DataItem) {
	c, ok := lookupOrLog(m.leechers, data.Hash, "Manager.handleData", "Data for unknown download, dropping")
	if !ok {
		return
	}

	if err := c.Write(location, data.Offset, data.Data); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Manager.handleData",
			"location": location.String(),
			"hash":     data.Hash.String(),
			"offset":   data.Offset,
			"error":    err.Error(),
		}).Warn("Failed to write data")
		return
	}

	if c.IsComplete() {
		m.completeDownload(data.Hash, c)
	}
}

func (m *Manager) handleChunkMapRequest(location id.LocationID, req *item.ChunkMapRequestItem) {
	if req.IsLeecher {
		c, ok := lookupOrLog(m.leechers, req.Hash, "Manager.handleChunkMapRequest", "No download for leecher map request")
		if ok {
			m.sender.SendChunkMap(location, req.Hash, false, c.CompressedChunkMap())
		}
		return
	}

	p, ok := lookupOrLog(m.seeders, req.Hash, "Manager.handleChunkMapRequest", "No shared file for seeder map request")
	if ok {
		m.sender.SendChunkMap(location, req.Hash, true, p.CompressedChunkMap())
	}
}

func (m *Manager) handleChunkMap(location id.LocationID, chunkMap *item.ChunkMapItem) {
	c, ok := lookupOrLog(m.leechers, chunkMap.Hash, "Manager.handleChunkMap", "Chunk map for unknown download, dropping")
	if !ok {
		return
	}
	c.SetPeerChunkMap(location, chunkMap.ChunkMap)
}

func (m *Manager) status(reply chan<- []DownloadStatus) {
	statuses := lo.MapToSlice(m.leechers, func(hash id.Sha1Sum, c *FileCreator) DownloadStatus {
		return DownloadStatus{
			Hash:            hash,
			Size:            c.Size(),
			Name:            c.name,
			CompletedChunks: c.CompletedChunks(),
			TotalChunks:     c.Chunks(),
			Peers:           c.Peers(),
		}
	})
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Hash.String() < statuses[j].Hash.String()
	})

	select {
	case reply <- statuses:
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Manager.status",
		}).Warn("Status reply channel not ready, dropping snapshot")
	}
}

// schedule persists progress and issues the requests of every download.
func (m *Manager) schedule() {
	now := m.timeProvider.Now()
	for hash, c := range m.leechers {
		if c.dirty {
			if err := m.store.SaveDownload(c.record(hash)); err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "Manager.schedule",
					"hash":     hash.String(),
					"error":    err.Error(),
				}).Warn("Failed to persist download progress")
			} else {
				c.dirty = false
			}
		}
		m.requestChunkMaps(hash, c, now)
		m.requestChunks(hash, c, now)
	}
}

func (m *Manager) requestChunkMaps(hash id.Sha1Sum, c *FileCreator, now time.Time) {
	for _, location := range c.Peers() {
		state := c.peers[location]
		if state.chunkMap != nil {
			continue
		}
		if !state.mapRequested.IsZero() && m.timeProvider.Since(state.mapRequested) < m.options.RequestTimeout {
			continue
		}
		m.sender.SendChunkMapRequest(location, hash, false)
		state.mapRequested = now
	}
}

func (m *Manager) requestChunks(hash id.Sha1Sum, c *FileCreator, now time.Time) {
	if len(c.peers) == 0 {
		return
	}

	for chunk, requestedAt := range c.pending {
		if requestedAt.IsZero() || m.timeProvider.Since(requestedAt) >= m.options.RequestTimeout {
			m.requestChunk(hash, c, chunk, now)
		}
	}

	for len(c.pending) < m.options.MaxPendingChunks {
		chunk, ok := c.distributor.NextChunk()
		if !ok {
			break
		}
		c.pending[chunk] = time.Time{}
		m.requestChunk(hash, c, chunk, now)
	}
}

// requestChunk asks one source for the missing blocks of chunk. The chunk
// stays pending with a zero time when no source holds it.
func (m *Manager) requestChunk(hash id.Sha1Sum, c *FileCreator, chunk uint, now time.Time) {
	sources := c.peersWithChunk(chunk)
	if len(sources) == 0 {
		return
	}
	source := lo.Sample(sources)

	block := uint64(m.options.BlockSize)
	for _, r := range c.missingRanges(chunk) {
		for offset := r.start; offset < r.end; offset += block {
			length := min(block, r.end-offset)
			m.sender.SendDataRequest(source, hash, c.Size(), offset, uint32(length))
		}
	}
	c.pending[chunk] = now

	logrus.WithFields(logrus.Fields{
		"function": "Manager.requestChunk",
		"hash":     hash.String(),
		"chunk":    chunk,
		"source":   source.String(),
	}).Debug("Requested chunk")
}

// shutdown logs the commands left in the queue, then saves and closes every
// download.
func (m *Manager) shutdown() {
	logger := logrus.WithFields(logrus.Fields{
		"function": "Manager.shutdown",
	})

	discarded := 0
drain:
	for {
		select {
		case cmd := <-m.queue:
			discarded++
			logger.WithField("command", describeCommand(cmd)).Warn("Discarding unprocessed command")
		default:
			break drain
		}
	}

	for hash, c := range m.leechers {
		if err := m.store.SaveDownload(c.record(hash)); err != nil {
			logger.WithError(err).WithField("hash", hash.String()).Warn("Failed to persist download")
		}
		if err := c.Close(); err != nil {
			logger.WithError(err).WithField("hash", hash.String()).Warn("Failed to close download file")
		}
	}
	for _, p := range m.seeders {
		_ = p.Close()
	}

	logger.WithFields(logrus.Fields{
		"discarded": discarded,
		"downloads": len(m.leechers),
	}).Info("File transfer manager stopped")
}

// lookupOrLog returns table[hash] and logs when it is missing.
func lookupOrLog[V any](table map[id.Sha1Sum]V, hash id.Sha1Sum, function, message string) (V, bool) {
	v, ok := table[hash]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": function,
			"hash":     hash.String(),
		}).Warn(message)
	}
	return v, ok
}

func describeCommand(cmd Command) string {
	switch c := cmd.(type) {
	case ItemCommand:
		return fmt.Sprintf("item %T from %s", c.Item, c.Location)
	case ActionCommand:
		return fmt.Sprintf("action %T", c.Action)
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
