package transport

import (
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
	"github.com/opd-ai/rsnode/limits"
	"github.com/opd-ai/rsnode/noise"
)

// ItemHandler receives the items arriving on a link.
type ItemHandler func(location id.LocationID, it item.FileTransferItem)

// ItemLink exchanges file transfer items with the peers of a PeerTable. With
// a key pair every datagram is sealed, otherwise items travel in clear.
type ItemLink struct {
	transport Transport
	self      id.LocationID
	peers     *PeerTable
	keys      *noise.KeyPair

	mu      sync.RWMutex
	handler ItemHandler
}

// NewItemLink creates a link over transport. keys may be nil.
func NewItemLink(transport Transport, self id.LocationID, peers *PeerTable, keys *noise.KeyPair) *ItemLink {
	l := &ItemLink{
		transport: transport,
		self:      self,
		peers:     peers,
		keys:      keys,
	}
	transport.RegisterHandler(PacketItem, l.handlePacket)
	transport.RegisterHandler(PacketSealedItem, l.handlePacket)

	logrus.WithFields(logrus.Fields{
		"function": "NewItemLink",
		"location": self.String(),
		"sealed":   keys != nil,
		"peers":    len(peers.Locations()),
	}).Info("Item link created")

	return l
}

// SetHandler sets the receiver of inbound items.
func (l *ItemLink) SetHandler(handler ItemHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
}

// WriteItem encodes it and sends it to location. Failures are logged, the
// link gives no delivery guarantee.
func (l *ItemLink) WriteItem(location id.LocationID, it item.FileTransferItem) {
	if err := l.send(location, it); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ItemLink.WriteItem",
			"location": location.String(),
			"item":     fmt.Sprintf("%T", it),
			"error":    err.Error(),
		}).Warn("Failed to send item")
	}
}

func (l *ItemLink) send(location id.LocationID, it item.FileTransferItem) error {
	peer, ok := l.peers.Lookup(location)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPeer, location)
	}

	encoded, err := item.Encode(it)
	if err != nil {
		return err
	}

	packet := &Packet{PacketType: PacketItem, Sender: l.self, Data: encoded}
	if l.keys != nil {
		if peer.PublicKey == nil {
			return fmt.Errorf("peer %s has no public key", location)
		}
		packet.PacketType = PacketSealedItem
		if packet.Data, err = noise.Seal(l.keys, peer.PublicKey, packet.Header(), encoded); err != nil {
			return err
		}
	}

	return l.transport.Send(packet, peer.Addr)
}

// handlePacket authenticates and decodes an inbound packet.
func (l *ItemLink) handlePacket(packet *Packet, addr net.Addr) error {
	peer, ok := l.peers.Lookup(packet.Sender)
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrUnknownPeer, packet.Sender, addr)
	}

	data := packet.Data
	switch {
	case l.keys == nil && packet.PacketType == PacketItem:
		if addr.String() != peer.Addr.String() {
			return fmt.Errorf("peer %s sent from %s, expected %s", packet.Sender, addr, peer.Addr)
		}
	case l.keys != nil && packet.PacketType == PacketSealedItem:
		if peer.PublicKey == nil {
			return fmt.Errorf("peer %s has no public key", packet.Sender)
		}
		opened, err := noise.Open(l.keys, peer.PublicKey, packet.Header(), data)
		if err != nil {
			return err
		}
		data = opened
	default:
		return fmt.Errorf("packet type %d not accepted on this link", packet.PacketType)
	}

	if err := limits.ValidateProcessingBuffer(data); err != nil {
		return err
	}
	decoded, err := item.Decode(data)
	if err != nil {
		return err
	}
	it, ok := decoded.(item.FileTransferItem)
	if !ok {
		return fmt.Errorf("%w: %T on a direct link", item.ErrUnknownItem, decoded)
	}

	l.mu.RLock()
	handler := l.handler
	l.mu.RUnlock()
	if handler != nil {
		handler(packet.Sender, it)
	}
	return nil
}
