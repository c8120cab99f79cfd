package xsocket

import (
	"net"

	"golang.org/x/net/ipv4"
)

// Kind identifies the transport a handle was created for.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTCPListener
	KindTCPConn
	KindMulticastSender
	KindMulticastReceiver
	KindUDPSender
)

func (k Kind) String() string {
	switch k {
	case KindTCPListener:
		return "tcp-listen"
	case KindTCPConn:
		return "tcp-conn"
	case KindMulticastSender:
		return "udp-multicast-send"
	case KindMulticastReceiver:
		return "udp-multicast-recv"
	case KindUDPSender:
		return "udp-send"
	default:
		return "invalid"
	}
}

func (k Kind) stream() bool {
	return k == KindTCPConn
}

// Handle owns one OS socket. A nil or closed Handle is invalid; every method
// is safe to call on it and fails with ErrInvalidHandle.
//
// A Handle is not safe for concurrent use. It belongs to the goroutine that
// created it, and that goroutine closes it.
type Handle struct {
	kind Kind

	ln   *net.TCPListener
	conn net.Conn
	pc   *ipv4.PacketConn

	group         *net.UDPAddr
	rcvbuf        int
	rcvbufApplied int
	lastFrom      net.Addr
	closed        bool
}

// Valid reports whether h can still be used for I/O.
func (h *Handle) Valid() bool {
	return h != nil && !h.closed && h.kind != KindInvalid
}

// Kind returns KindInvalid once the handle is closed.
func (h *Handle) Kind() Kind {
	if !h.Valid() {
		return KindInvalid
	}
	return h.kind
}

func (h *Handle) LocalAddr() net.Addr {
	if !h.Valid() {
		return nil
	}
	if h.ln != nil {
		return h.ln.Addr()
	}
	return h.conn.LocalAddr()
}

// RemoteAddr returns the connected peer, or the group for multicast
// handles.
func (h *Handle) RemoteAddr() net.Addr {
	if !h.Valid() {
		return nil
	}
	if h.group != nil {
		return h.group
	}
	if h.conn != nil {
		return h.conn.RemoteAddr()
	}
	return nil
}

// RecvBufferSize is the clamped receive buffer size a multicast receiver
// asked the kernel for.
func (h *Handle) RecvBufferSize() int {
	if !h.Valid() {
		return 0
	}
	return h.rcvbuf
}

// RecvBufferApplied is SO_RCVBUF as read back after the resize. It may
// differ from RecvBufferSize: Linux doubles the request and caps it at
// net.core.rmem_max.
func (h *Handle) RecvBufferApplied() int {
	if !h.Valid() {
		return 0
	}
	return h.rcvbufApplied
}

// Close releases the socket. Closing an invalid handle is a no-op.
func (h *Handle) Close() error {
	if !h.Valid() {
		return nil
	}
	h.closed = true

	var err error
	switch {
	case h.ln != nil:
		err = h.ln.Close()
	case h.pc != nil:
		// Closing the socket drops any group membership with it.
		err = h.pc.Close()
	case h.conn != nil:
		err = h.conn.Close()
	}
	if err != nil {
		return opErr("close", h.kind.String(), ReasonIO, err)
	}
	return nil
}

func (h *Handle) check(op string, kinds ...Kind) error {
	if !h.Valid() {
		return opErr(op, "", ReasonState, ErrInvalidHandle)
	}
	for _, k := range kinds {
		if h.kind == k {
			return nil
		}
	}
	return opErr(op, h.kind.String(), ReasonState, ErrWrongKind)
}
