package xsocket

import (
	"context"
	"errors"
	"net"
	"net/netip"
)

// UDPSender pairs an unconnected UDP handle with a fixed destination for
// repeated one-shot sends.
type UDPSender struct {
	h    *Handle
	dest netip.AddrPort
}

func (m *Manager) NewUDPSender(destIP string, port uint16) (*UDPSender, error) {
	const op = "create udp sender"
	if err := m.ready(op); err != nil {
		return nil, err
	}
	ip, err := parseIPv4(destIP)
	if err != nil {
		return nil, opErr(op, destIP, ReasonAddress, err)
	}

	lc := net.ListenConfig{}
	c, err := lc.ListenPacket(context.Background(), "udp4", "0.0.0.0:0")
	if err != nil {
		return nil, opErr(op, destIP, ReasonCreate, err)
	}

	return &UDPSender{
		h:    &Handle{kind: KindUDPSender, conn: c.(*net.UDPConn)},
		dest: netip.AddrPortFrom(ip, port),
	}, nil
}

// Send writes b as one datagram to the sender's destination.
func (s *UDPSender) Send(b []byte) (int, error) {
	const op = "send udp"
	if s == nil {
		return 0, opErr(op, "", ReasonState, ErrInvalidHandle)
	}
	if err := s.h.check(op, KindUDPSender); err != nil {
		return 0, err
	}
	if len(b) > BufferSize {
		return 0, opErr(op, s.dest.String(), ReasonIO, ErrBufferTooLarge)
	}

	n, err := sendToNonblock(s.h.conn.(*net.UDPConn), b, s.dest)
	if err != nil {
		if errors.Is(err, ErrWouldBlock) {
			return n, opErr(op, s.dest.String(), ReasonWouldBlock, ErrWouldBlock)
		}
		return n, opErr(op, s.dest.String(), ReasonIO, err)
	}
	return n, nil
}

// Handle exposes the underlying socket, e.g. to read replies.
func (s *UDPSender) Handle() *Handle {
	if s == nil {
		return nil
	}
	return s.h
}

// Dest is the address every Send targets.
func (s *UDPSender) Dest() netip.AddrPort {
	return s.dest
}

func (s *UDPSender) Close() error {
	if s == nil {
		return nil
	}
	return s.h.Close()
}
