// Package turtle declares the narrow contract between the file transfer
// engine and the anonymizing overlay ("turtle") router. Tunnel discovery and
// routing live behind Router and are not implemented here.
package turtle

//go:generate go run go.uber.org/mock/mockgen -source=turtle.go -destination=../mocks/mock_turtle.go -package=mocks

import (
	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
)

// TunnelDirection tells which end of a tunnel the local node is.
type TunnelDirection uint8

const (
	// DirectionClient means the local node opened the tunnel to download.
	DirectionClient TunnelDirection = iota
	// DirectionServer means the local node answers for a file it holds.
	DirectionServer
)

// String returns a readable direction name.
func (d TunnelDirection) String() string {
	if d == DirectionServer {
		return "server"
	}
	return "client"
}

// Router is the overlay as seen by a tunnel client.
type Router interface {
	// IsVirtualPeer reports whether location is only reachable through a tunnel.
	IsVirtualPeer(location id.LocationID) bool
	// SendTurtleData hands an item to the overlay for tunnel delivery.
	SendTurtleData(virtualLocation id.LocationID, it item.TunnelItem)
	// StartMonitoringTunnels asks the overlay to build and keep tunnels for hashOfHash.
	StartMonitoringTunnels(hashOfHash id.Sha1Sum, client Client, allowMultiTunnels bool)
	// StopMonitoringTunnels releases the tunnels of hashOfHash.
	StopMonitoringTunnels(hashOfHash id.Sha1Sum)
	// TurtleSearch floods a free text search and returns its request id.
	TurtleSearch(query string, client Client) uint32
}

// Client is implemented by services that use tunnels.
type Client interface {
	HandleTunnelRequest(sender id.LocationID, hash id.Sha1Sum) bool
	ReceiveTurtleData(it item.TunnelItem, hashOfHash id.Sha1Sum, virtualLocation id.LocationID, direction TunnelDirection)
	ReceiveSearchRequest(query []byte, maxHits int) [][]byte
	ReceiveSearchResult(requestID uint32, result SearchResultItem)
	AddVirtualPeer(hashOfHash id.Sha1Sum, virtualLocation id.LocationID, direction TunnelDirection)
	RemoveVirtualPeer(hashOfHash id.Sha1Sum, virtualLocation id.LocationID)
}

// SearchResultItem is a search answer relayed by the overlay.
type SearchResultItem interface {
	isSearchResult()
}

// FileInfo describes one file found by a search.
type FileInfo struct {
	Name string
	Size uint64
	Hash id.Sha1Sum
}

// FileSearchResultItem answers a file name search.
type FileSearchResultItem struct {
	Results []FileInfo
}

// GenericSearchResultItem answers a service specific search with opaque data.
type GenericSearchResultItem struct {
	Data []byte
}

func (*FileSearchResultItem) isSearchResult()    {}
func (*GenericSearchResultItem) isSearchResult() {}
