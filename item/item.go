// Package item defines the wire items exchanged by the file transfer service,
// directly between peers or inside overlay tunnels, and their binary codec.
//
// Both families are closed sum types: every concrete item lives in this
// package and consumers dispatch with an exhaustive type switch.
package item

import (
	"fmt"

	"github.com/opd-ai/rsnode/id"
)

// ServiceType identifies the service owning an item.
type ServiceType uint16

const (
	// ServiceTurtle owns the overlay tunnel items.
	ServiceTurtle ServiceType = 0x0014
	// ServiceFileTransfer owns the direct file transfer items.
	ServiceFileTransfer ServiceType = 0x0017
)

// String returns a readable service name.
func (s ServiceType) String() string {
	switch s {
	case ServiceTurtle:
		return "turtle"
	case ServiceFileTransfer:
		return "file_transfer"
	default:
		return fmt.Sprintf("service(0x%04x)", uint16(s))
	}
}

// Item is any encodable wire item.
type Item interface {
	Service() ServiceType
	SubType() uint8
	marshal(w *writer)
	unmarshal(r *reader)
}

// FileTransferItem is an item sent directly over a peer connection. It always
// carries the real content hash.
type FileTransferItem interface {
	Item
	FileHash() id.Sha1Sum
	isFileTransferItem()
}

// TunnelItem is an item that travels through an overlay tunnel. It never
// carries the real content hash.
type TunnelItem interface {
	Item
	isTunnelItem()
}

// CompressedChunkMap is the transmitted form of a chunk map: bit i of the map
// is bit (i % 32) of word (i / 32).
type CompressedChunkMap []uint32
