package signal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// maxDatagram bounds one received message.
const maxDatagram = 1024

// Listener receives the datagrams a UDPSink sends.
type Listener struct {
	conn *net.UDPConn
}

// Listen opens a UDP socket on addr. Use port 0 for an ephemeral port.
func Listen(addr string) (*Listener, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &Listener{conn: conn}, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() string {
	return l.conn.LocalAddr().String()
}

// Serve calls handle with each received payload until ctx is cancelled.
func (l *Listener) Serve(ctx context.Context, handle func(payload string)) error {
	stop := context.AfterFunc(ctx, func() {
		l.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, maxDatagram)
	for {
		n, _, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}
		handle(string(buf[:n]))
	}
}

// Close closes the socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}
