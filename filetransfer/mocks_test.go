package filetransfer

import (
	"sync"
	"time"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
)

// mockTimeProvider provides deterministic time for testing.
type mockTimeProvider struct {
	currentTime time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.currentTime
}

func (m *mockTimeProvider) Since(t time.Time) time.Duration {
	return m.currentTime.Sub(t)
}

func (m *mockTimeProvider) advance(d time.Duration) {
	m.currentTime = m.currentTime.Add(d)
}

func newMockTimeProvider() *mockTimeProvider {
	return &mockTimeProvider{
		currentTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type sentDataRequest struct {
	location  id.LocationID
	hash      id.Sha1Sum
	size      uint64
	offset    uint64
	chunkSize uint32
}

type sentData struct {
	location id.LocationID
	hash     id.Sha1Sum
	size     uint64
	offset   uint64
	data     []byte
}

type sentChunkMapRequest struct {
	location  id.LocationID
	hash      id.Sha1Sum
	isLeecher bool
}

type sentChunkMap struct {
	location id.LocationID
	hash     id.Sha1Sum
	isClient bool
	chunkMap item.CompressedChunkMap
}

// mockSender records everything the manager sends.
type mockSender struct {
	dataRequests     []sentDataRequest
	data             []sentData
	chunkMapRequests []sentChunkMapRequest
	chunkMaps        []sentChunkMap
	activated        []id.Sha1Sum
	deactivated      []id.Sha1Sum
}

func (m *mockSender) SendDataRequest(location id.LocationID, hash id.Sha1Sum, size, offset uint64, chunkSize uint32) {
	m.dataRequests = append(m.dataRequests, sentDataRequest{location, hash, size, offset, chunkSize})
}

func (m *mockSender) SendData(location id.LocationID, hash id.Sha1Sum, size, offset uint64, data []byte) {
	m.data = append(m.data, sentData{location, hash, size, offset, data})
}

func (m *mockSender) SendChunkMapRequest(location id.LocationID, hash id.Sha1Sum, isLeecher bool) {
	m.chunkMapRequests = append(m.chunkMapRequests, sentChunkMapRequest{location, hash, isLeecher})
}

func (m *mockSender) SendChunkMap(location id.LocationID, hash id.Sha1Sum, isClient bool, chunkMap item.CompressedChunkMap) {
	m.chunkMaps = append(m.chunkMaps, sentChunkMap{location, hash, isClient, chunkMap})
}

func (m *mockSender) ActivateTunnels(hash id.Sha1Sum) {
	m.activated = append(m.activated, hash)
}

func (m *mockSender) DeactivateTunnels(hash id.Sha1Sum) {
	m.deactivated = append(m.deactivated, hash)
}

func (m *mockSender) reset() {
	*m = mockSender{}
}

// memoryStore is an in-memory DownloadStore.
type memoryStore struct {
	mu        sync.Mutex
	downloads map[id.Sha1Sum]Download
}

func newMemoryStore() *memoryStore {
	return &memoryStore{downloads: make(map[id.Sha1Sum]Download)}
}

func (s *memoryStore) SaveDownload(d Download) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads[d.Hash] = d
	return nil
}

func (s *memoryStore) DeleteDownload(hash id.Sha1Sum) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.downloads, hash)
	return nil
}

func (s *memoryStore) LoadDownloads() ([]Download, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	downloads := make([]Download, 0, len(s.downloads))
	for _, d := range s.downloads {
		downloads = append(downloads, d)
	}
	return downloads, nil
}

func (s *memoryStore) get(hash id.Sha1Sum) (Download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.downloads[hash]
	return d, ok
}

type completion struct {
	hash id.Sha1Sum
	path string
}

// recordingNotifier collects notifications.
type recordingNotifier struct {
	completed []completion
}

func (n *recordingNotifier) FoundFile(uint32, string, uint64, id.Sha1Sum) {}

func (n *recordingNotifier) DownloadCompleted(hash id.Sha1Sum, path string) {
	n.completed = append(n.completed, completion{hash, path})
}
