package filetransfer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/limits"
	"github.com/opd-ai/rsnode/rscrypto"
	"github.com/opd-ai/rsnode/turtle"
)

// sendTurtleItem encrypts it with the key of hash and hands it to the overlay.
// Only encrypted items are ever sent through tunnels.
func (s *Service) sendTurtleItem(router turtle.Router, virtualLocation id.LocationID, hash id.Sha1Sum, it item.TunnelItem) {
	encrypted, err := s.encryptItem(it, hash)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Service.sendTurtleItem",
			"location": virtualLocation.String(),
			"item":     fmt.Sprintf("%T", it),
			"error":    err.Error(),
		}).Error("Failed to encrypt tunnel item")
		return
	}
	router.SendTurtleData(virtualLocation, encrypted)
}

func (s *Service) encryptItem(it item.TunnelItem, hash id.Sha1Sum) (*item.TurtleGenericDataItem, error) {
	serialized, err := item.Encode(it)
	if err != nil {
		return nil, err
	}
	defer rscrypto.ZeroBytes(serialized)

	key := rscrypto.NewFileTransferEncryptionKey(hash)
	defer key.Wipe()

	payload, err := rscrypto.EncryptAuthenticateData(key, serialized, s.format)
	if err != nil {
		return nil, err
	}
	return &item.TurtleGenericDataItem{TunnelData: payload}, nil
}

// decryptItem returns the tunnel item inside data and the plaintext buffer
// it was decoded from. The caller wipes the buffer once done.
func (s *Service) decryptItem(data *item.TurtleGenericDataItem, hash id.Sha1Sum) (item.TunnelItem, []byte, error) {
	if err := limits.ValidateMessageSize(data.TunnelData, limits.MaxTunnelPayload); err != nil {
		return nil, nil, err
	}

	key := rscrypto.NewFileTransferEncryptionKey(hash)
	defer key.Wipe()

	plaintext, err := rscrypto.DecryptAuthenticateData(key, data.TunnelData)
	if err != nil {
		return nil, nil, err
	}

	decoded, err := item.Decode(plaintext)
	if err != nil {
		rscrypto.ZeroBytes(plaintext)
		return nil, nil, err
	}
	tunnelItem, ok := decoded.(item.TunnelItem)
	if !ok {
		rscrypto.ZeroBytes(plaintext)
		return nil, nil, fmt.Errorf("%w: %T inside a tunnel", item.ErrUnknownItem, decoded)
	}
	return tunnelItem, plaintext, nil
}

// HandleTunnelRequest accepts a tunnel when the requested file is seeded by
// the manager or found in file storage. The hash may be the hash of hash of a
// known file.
func (s *Service) HandleTunnelRequest(sender id.LocationID, hash id.Sha1Sum) bool {
	if realHash, ok := s.findRealHash(hash); ok {
		hash = realHash
	}
	if s.manager.IsSeeding(hash) {
		logrus.WithFields(logrus.Fields{
			"function": "Service.HandleTunnelRequest",
			"sender":   sender.String(),
			"hash":     hash.String(),
		}).Debug("Accepting tunnel for seeded file")
		return true
	}
	if s.files == nil {
		return false
	}

	path, ok := s.files.FindFile(hash)
	if ok {
		logrus.WithFields(logrus.Fields{
			"function": "Service.HandleTunnelRequest",
			"sender":   sender.String(),
			"path":     path,
		}).Debug("Found file for tunnel request")
	}
	return ok
}

// ReceiveTurtleData decrypts a tunnel payload and queues the item it holds as
// if it came from a direct peer named virtualLocation.
func (s *Service) ReceiveTurtleData(it item.TunnelItem, hashOfHash id.Sha1Sum, virtualLocation id.LocationID, direction turtle.TunnelDirection) {
	logger := logrus.WithFields(logrus.Fields{
		"function":  "Service.ReceiveTurtleData",
		"location":  virtualLocation.String(),
		"direction": direction.String(),
	})

	data, ok := it.(*item.TurtleGenericDataItem)
	if !ok {
		logger.WithField("item", fmt.Sprintf("%T", it)).Warn("Unencrypted tunnel item, dropping")
		return
	}

	hash, ok := s.findRealHash(hashOfHash)
	if !ok {
		logger.WithField("hash_of_hash", hashOfHash.String()).Error("Cannot find the real hash of hash")
		return
	}

	inner, plaintext, err := s.decryptItem(data, hash)
	if err != nil {
		logger.WithFields(rscrypto.SecureFieldHash(data.TunnelData, "tunnel_data")).
			WithField("error", err.Error()).
			Warn("Failed to decrypt tunnel item")
		return
	}
	defer rscrypto.ZeroBytes(plaintext)

	converted, ok := fromTunnelItem(inner, hash, direction)
	if !ok {
		logger.WithField("item", fmt.Sprintf("%T", inner)).Warn("Unexpected item inside tunnel, dropping")
		return
	}
	s.HandleItem(virtualLocation, converted)
}

// fromTunnelItem converts a decrypted tunnel item into its direct form. The
// tunnel does not carry the file size, so Size is left at zero. Byte slices
// are copied since the decrypted buffer is wiped after dispatch.
func fromTunnelItem(it item.TunnelItem, hash id.Sha1Sum, direction turtle.TunnelDirection) (item.FileTransferItem, bool) {
	switch i := it.(type) {
	case *item.TurtleFileRequestItem:
		return &item.DataRequestItem{Hash: hash, Offset: i.Offset, ChunkSize: i.ChunkSize}, true
	case *item.TurtleFileDataItem:
		return &item.DataItem{Hash: hash, Offset: i.Offset, Data: append([]byte(nil), i.Data...)}, true
	case *item.TurtleFileMapRequestItem:
		// The server end asks the client for its download map.
		return &item.ChunkMapRequestItem{Hash: hash, IsLeecher: direction == turtle.DirectionClient}, true
	case *item.TurtleFileMapItem:
		return &item.ChunkMapItem{Hash: hash, IsClient: direction == turtle.DirectionClient, ChunkMap: i.ChunkMap}, true
	case *item.TurtleChunkCrcRequestItem:
		return &item.SingleChunkCrcRequestItem{Hash: hash, ChunkNumber: i.ChunkNumber}, true
	case *item.TurtleChunkCrcItem:
		return &item.SingleChunkCrcItem{Hash: hash, ChunkNumber: i.ChunkNumber, CheckSum: i.CheckSum}, true
	default:
		return nil, false
	}
}

// ReceiveSearchRequest answers overlay searches. File searches are answered
// by the overlay itself, this service has nothing to add.
func (s *Service) ReceiveSearchRequest(query []byte, maxHits int) [][]byte {
	return nil
}

// ReceiveSearchResult forwards file search results to the notifier.
func (s *Service) ReceiveSearchResult(requestID uint32, result turtle.SearchResultItem) {
	files, ok := result.(*turtle.FileSearchResultItem)
	if !ok {
		return
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Service.ReceiveSearchResult",
		"request_id": requestID,
		"results":    len(files.Results),
	}).Debug("Forwarding search results as notifications")

	for _, info := range files.Results {
		s.notifier.FoundFile(requestID, info.Name, info.Size, info.Hash)
	}
}

// AddVirtualPeer registers a tunnel end as a source when the local node is
// the downloading side.
func (s *Service) AddVirtualPeer(hashOfHash id.Sha1Sum, virtualLocation id.LocationID, direction turtle.TunnelDirection) {
	if direction != turtle.DirectionClient {
		return
	}
	hash, ok := s.findRealHash(hashOfHash)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function":     "Service.AddVirtualPeer",
			"hash_of_hash": hashOfHash.String(),
		}).Warn("Virtual peer for unknown hash")
		return
	}
	s.manager.Enqueue(ActionCommand{Action: AddSourceAction{Hash: hash, Location: virtualLocation}})
}

// RemoveVirtualPeer forgets a tunnel end.
func (s *Service) RemoveVirtualPeer(hashOfHash id.Sha1Sum, virtualLocation id.LocationID) {
	hash, ok := s.findRealHash(hashOfHash)
	if !ok {
		return
	}
	s.manager.Enqueue(ActionCommand{Action: RemoveSourceAction{Hash: hash, Location: virtualLocation}})
}
