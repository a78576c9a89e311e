package signal

import (
	"fmt"
	"net"
)

// DefaultUDPAddr is where the game listens for gesture messages.
const DefaultUDPAddr = "127.0.0.1:12345"

// UDPSink sends each payload as one UTF-8 datagram with no framing.
type UDPSink struct {
	conn  *net.UDPConn
	raddr *net.UDPAddr
	addr  string
}

// NewUDPSink resolves addr and opens an unconnected socket. Sending from an
// unconnected socket keeps ICMP port-unreachable replies from surfacing as
// write errors while nobody is listening.
func NewUDPSink(addr string) (*UDPSink, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}

	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, fmt.Errorf("open socket for %s: %w", addr, err)
	}

	return &UDPSink{conn: conn, raddr: raddr, addr: addr}, nil
}

// Addr returns the destination address.
func (s *UDPSink) Addr() string {
	return s.addr
}

// Emit sends payload as a single datagram.
func (s *UDPSink) Emit(payload string) error {
	if _, err := s.conn.WriteToUDP([]byte(payload), s.raddr); err != nil {
		return fmt.Errorf("send to %s: %w", s.addr, err)
	}
	return nil
}

// Close closes the socket.
func (s *UDPSink) Close() error {
	return s.conn.Close()
}
