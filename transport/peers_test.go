package transport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/noise"
)

func TestParsePeer(t *testing.T) {
	location := id.NewLocationID()
	key := strings.Repeat("ab", noise.KeySize)

	peer, err := ParsePeer(location.String() + "@127.0.0.1:7812")
	require.NoError(t, err)
	assert.Equal(t, location, peer.Location)
	assert.Equal(t, "127.0.0.1:7812", peer.Addr.String())
	assert.Nil(t, peer.PublicKey)

	peer, err = ParsePeer(" " + location.String() + "@127.0.0.1:7812/" + key + " ")
	require.NoError(t, err)
	assert.Len(t, peer.PublicKey, noise.KeySize)
}

func TestParsePeerErrors(t *testing.T) {
	location := id.NewLocationID().String()

	for _, entry := range []string{
		"127.0.0.1:7812",
		"abcd@127.0.0.1:7812",
		location + "@not an address",
		location + "@127.0.0.1:7812/abcd",
	} {
		_, err := ParsePeer(entry)
		assert.Error(t, err, entry)
	}
}

func TestPeerTable(t *testing.T) {
	first := id.LocationID{1}
	second := id.LocationID{2}

	table, err := ParsePeerTable([]string{
		second.String() + "@127.0.0.1:2",
		"",
		first.String() + "@127.0.0.1:1",
	})
	require.NoError(t, err)
	assert.Equal(t, []id.LocationID{first, second}, table.Locations())

	peer, ok := table.Lookup(second)
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1:2", peer.Addr.String())

	_, ok = table.Lookup(id.LocationID{3})
	assert.False(t, ok)

	_, err = ParsePeerTable([]string{"garbage"})
	assert.Error(t, err)
}
