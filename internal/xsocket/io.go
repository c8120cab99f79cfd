package xsocket

import (
	"errors"
	"io"
	"net"
)

// Send performs one non-blocking write of b. A short count is returned as is;
// the caller decides whether to send the remainder.
func (h *Handle) Send(b []byte) (int, error) {
	const op = "send"
	if err := h.check(op, KindTCPConn, KindMulticastSender); err != nil {
		return 0, err
	}
	if len(b) > BufferSize {
		return 0, opErr(op, h.peer(), ReasonIO, ErrBufferTooLarge)
	}

	n, err := sendNonblock(h.conn, b)
	if err != nil {
		return n, h.ioErr(op, err)
	}
	return n, nil
}

// Receive performs one non-blocking read into b. On a TCP connection a read
// of zero bytes means the peer closed, reported as io.EOF. Datagram sockets
// may legitimately return zero bytes.
func (h *Handle) Receive(b []byte) (int, error) {
	n, _, err := h.receive("receive", b, KindTCPConn, KindMulticastReceiver, KindUDPSender)
	return n, err
}

// ReceiveFrom is Receive that also returns the datagram source. For TCP the
// source is the connected peer.
func (h *Handle) ReceiveFrom(b []byte) (int, net.Addr, error) {
	n, from, err := h.receive("receive from", b, KindTCPConn, KindMulticastReceiver, KindUDPSender)
	if err == nil && from == nil && h.conn != nil {
		from = h.conn.RemoteAddr()
	}
	return n, from, err
}

// ReceiveMulticast reads one datagram from a joined group. The sender
// address is kept on the handle but not returned.
func (h *Handle) ReceiveMulticast(b []byte) (int, error) {
	n, from, err := h.receive("receive multicast", b, KindMulticastReceiver)
	if err != nil {
		return n, err
	}
	h.lastFrom = from
	return n, nil
}

func (h *Handle) receive(op string, b []byte, kinds ...Kind) (int, net.Addr, error) {
	if err := h.check(op, kinds...); err != nil {
		return 0, nil, err
	}
	if len(b) > BufferSize {
		b = b[:BufferSize]
	}

	n, from, err := recvNonblock(h.conn, b)
	if err != nil {
		return 0, nil, h.ioErr(op, err)
	}
	if n == 0 && h.kind.stream() && len(b) > 0 {
		return 0, nil, opErr(op, h.peer(), ReasonPeerClosed, io.EOF)
	}
	return n, from, nil
}

func (h *Handle) ioErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrWouldBlock):
		return opErr(op, h.peer(), ReasonWouldBlock, ErrWouldBlock)
	case errors.Is(err, io.EOF):
		return opErr(op, h.peer(), ReasonPeerClosed, err)
	default:
		return opErr(op, h.peer(), ReasonIO, err)
	}
}

func (h *Handle) peer() string {
	if a := h.RemoteAddr(); a != nil {
		return a.String()
	}
	if a := h.LocalAddr(); a != nil {
		return a.String()
	}
	return ""
}
