package xsocket

import (
	"net"
)

// ClampRecvBuffer forces n into [lo, hi].
func ClampRecvBuffer(n, lo, hi int) int {
	switch {
	case n < lo:
		return lo
	case n > hi:
		return hi
	default:
		return n
	}
}

// applyRecvBuffer reads the socket's current SO_RCVBUF, clamps it to the
// configured bounds and writes it back. It returns the clamped size it asked
// for and the size the kernel reports afterwards, which Linux doubles and
// caps at net.core.rmem_max.
func (m *Manager) applyRecvBuffer(c *net.UDPConn) (requested, applied int, err error) {
	cur, err := getRecvBuffer(c)
	if err != nil {
		return 0, 0, err
	}

	lo, hi := m.cfg.recvBufferBounds()
	requested = ClampRecvBuffer(cur, lo, hi)
	if err := c.SetReadBuffer(requested); err != nil {
		return 0, 0, err
	}
	applied, err = getRecvBuffer(c)
	if err != nil {
		return 0, 0, err
	}

	m.log.Debug("multicast receive buffer resized",
		"old_kb", (cur+512)>>10,
		"requested_kb", (requested+512)>>10,
		"applied_kb", (applied+512)>>10,
	)
	return requested, applied, nil
}
