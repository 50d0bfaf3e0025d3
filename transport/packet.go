package transport

import (
	"errors"
	"fmt"

	"github.com/opd-ai/rsnode/id"
)

// PacketType identifies the type of a link packet.
type PacketType byte

const (
	// PacketItem carries an encoded item in clear.
	PacketItem PacketType = iota + 1
	// PacketSealedItem carries an encoded item sealed with noise.
	PacketSealedItem
)

// HeaderSize is the size of the packet header: type and sender location.
const HeaderSize = 1 + id.LocationIDLength

// MaxPacketSize is the largest datagram the link sends or accepts.
const MaxPacketSize = 65507

// ErrPacketTooShort indicates a datagram smaller than a packet header.
var ErrPacketTooShort = errors.New("packet too short")

// Packet is one datagram of the link.
type Packet struct {
	PacketType PacketType
	Sender     id.LocationID
	Data       []byte
}

// Header returns the serialized header, also used as noise prologue.
func (p *Packet) Header() []byte {
	header := make([]byte, HeaderSize)
	header[0] = byte(p.PacketType)
	copy(header[1:], p.Sender[:])
	return header
}

// Serialize converts a packet to a byte slice for transmission.
func (p *Packet) Serialize() ([]byte, error) {
	if p.Data == nil {
		return nil, errors.New("packet data is nil")
	}
	if HeaderSize+len(p.Data) > MaxPacketSize {
		return nil, fmt.Errorf("packet of %d bytes exceeds %d", HeaderSize+len(p.Data), MaxPacketSize)
	}

	// Format: [packet type (1 byte)][sender (16 bytes)][data (variable length)]
	result := make([]byte, HeaderSize+len(p.Data))
	copy(result, p.Header())
	copy(result[HeaderSize:], p.Data)

	return result, nil
}

// ParsePacket converts a byte slice to a Packet structure.
func ParsePacket(data []byte) (*Packet, error) {
	if len(data) < HeaderSize {
		return nil, ErrPacketTooShort
	}

	packet := &Packet{
		PacketType: PacketType(data[0]),
		Data:       make([]byte, len(data)-HeaderSize),
	}
	copy(packet.Sender[:], data[1:HeaderSize])
	copy(packet.Data, data[HeaderSize:])

	return packet, nil
}
