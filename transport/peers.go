package transport

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/noise"
)

// ErrUnknownPeer indicates a location missing from the peer table.
var ErrUnknownPeer = errors.New("unknown peer")

// Peer is a directly connected node.
type Peer struct {
	Location id.LocationID
	Addr     net.Addr
	// PublicKey is the peer's static noise key, nil for a plain link.
	PublicKey []byte
}

// ParsePeer parses "<location hex>@<host:port>[/<public key hex>]".
func ParsePeer(entry string) (Peer, error) {
	location, rest, ok := strings.Cut(strings.TrimSpace(entry), "@")
	if !ok {
		return Peer{}, fmt.Errorf("peer %q: missing '@'", entry)
	}

	loc, err := id.ParseLocationID(location)
	if err != nil {
		return Peer{}, fmt.Errorf("peer %q: %w", entry, err)
	}

	address, key, hasKey := strings.Cut(rest, "/")
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return Peer{}, fmt.Errorf("peer %q: %w", entry, err)
	}

	peer := Peer{Location: loc, Addr: addr}
	if hasKey {
		if peer.PublicKey, err = noise.ParseKey(key); err != nil {
			return Peer{}, fmt.Errorf("peer %q: %w", entry, err)
		}
	}
	return peer, nil
}

// PeerTable is the static set of direct peers. It is safe for concurrent use.
type PeerTable struct {
	mu    sync.RWMutex
	peers map[id.LocationID]Peer
}

// NewPeerTable creates a table holding peers.
func NewPeerTable(peers ...Peer) *PeerTable {
	t := &PeerTable{peers: make(map[id.LocationID]Peer)}
	for _, p := range peers {
		t.Add(p)
	}
	return t
}

// ParsePeerTable parses every entry with ParsePeer.
func ParsePeerTable(entries []string) (*PeerTable, error) {
	entries = lo.Filter(entries, func(entry string, _ int) bool {
		return strings.TrimSpace(entry) != ""
	})

	t := NewPeerTable()
	for _, entry := range entries {
		peer, err := ParsePeer(entry)
		if err != nil {
			return nil, err
		}
		t.Add(peer)
	}
	return t, nil
}

// Add inserts or replaces a peer.
func (t *PeerTable) Add(p Peer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.peers[p.Location] = p
}

// Lookup returns the peer at location.
func (t *PeerTable) Lookup(location id.LocationID) (Peer, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.peers[location]
	return p, ok
}

// Locations returns the locations of every peer, sorted.
func (t *PeerTable) Locations() []id.LocationID {
	t.mu.RLock()
	locations := lo.Keys(t.peers)
	t.mu.RUnlock()

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].String() < locations[j].String()
	})
	return locations
}
