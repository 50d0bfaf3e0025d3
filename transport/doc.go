// Package transport provides the direct peer link of the node: a datagram
// transport, the static peer table and an item link that implements
// filetransfer.PeerWriter.
//
// # Packets
//
// Every datagram starts with a packet type and the sender's location:
//
//	[packet type (1 byte)][sender location (16 bytes)][data]
//
// PacketItem carries an encoded item in clear and is only accepted from the
// address listed for the sender. PacketSealedItem carries an item sealed with
// the noise package, using the header as prologue.
//
// # Usage
//
//	udp, err := transport.NewUDPTransport(":7812")
//	peers, err := transport.ParsePeerTable([]string{"<location>@10.0.0.2:7812"})
//	link := transport.NewItemLink(udp, self, peers, nil)
//	link.SetHandler(service.HandleItem)
package transport
