package transport

import (
	"errors"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
)

// UDPTransport implements Transport over a single UDP socket. Inbound packets
// are dispatched synchronously from one read goroutine.
type UDPTransport struct {
	conn net.PacketConn

	mu       sync.RWMutex
	handlers map[PacketType]PacketHandler

	closeOnce sync.Once
	done      chan struct{}
}

var _ Transport = (*UDPTransport)(nil)

// NewUDPTransport listens on listenAddr and starts reading.
func NewUDPTransport(listenAddr string) (*UDPTransport, error) {
	conn, err := net.ListenPacket("udp", listenAddr)
	if err != nil {
		return nil, err
	}

	t := &UDPTransport{
		conn:     conn,
		handlers: make(map[PacketType]PacketHandler),
		done:     make(chan struct{}),
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewUDPTransport",
		"address":  conn.LocalAddr().String(),
	}).Info("UDP transport listening")

	go t.readLoop()
	return t, nil
}

// RegisterHandler sets the handler of packetType, replacing any previous one.
func (t *UDPTransport) RegisterHandler(packetType PacketType, handler PacketHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[packetType] = handler
}

// Send serializes packet and writes it to addr.
func (t *UDPTransport) Send(packet *Packet, addr net.Addr) error {
	data, err := packet.Serialize()
	if err != nil {
		return err
	}
	_, err = t.conn.WriteTo(data, addr)
	return err
}

// Close closes the socket and waits for the read goroutine to exit.
func (t *UDPTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		err = t.conn.Close()
	})
	<-t.done
	return err
}

// LocalAddr returns the bound address.
func (t *UDPTransport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

func (t *UDPTransport) readLoop() {
	defer close(t.done)
	buffer := make([]byte, MaxPacketSize)

	for {
		n, addr, err := t.conn.ReadFrom(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logrus.WithFields(logrus.Fields{
				"function": "UDPTransport.readLoop",
				"error":    err.Error(),
			}).Warn("UDP read failed")
			continue
		}
		t.dispatch(buffer[:n], addr)
	}
}

func (t *UDPTransport) dispatch(data []byte, addr net.Addr) {
	logger := logrus.WithFields(logrus.Fields{
		"function": "UDPTransport.dispatch",
		"from":     addr.String(),
	})

	packet, err := ParsePacket(data)
	if err != nil {
		logger.WithError(err).Debug("Dropping malformed packet")
		return
	}

	t.mu.RLock()
	handler, ok := t.handlers[packet.PacketType]
	t.mu.RUnlock()
	if !ok {
		logger.WithField("packet_type", packet.PacketType).Debug("No handler for packet type")
		return
	}

	if err := handler(packet, addr); err != nil {
		logger.WithFields(logrus.Fields{
			"packet_type": packet.PacketType,
			"error":       err.Error(),
		}).Debug("Packet handler failed")
	}
}
