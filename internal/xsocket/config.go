package xsocket

import (
	"log/slog"
	"net"
	"time"
)

const (
	// ListenBacklog is the pending-connection queue length of TCP listeners.
	ListenBacklog = 5
	// BufferSize is the largest payload a single send may carry.
	BufferSize = 4096

	DefaultRecvBufferMin = 16 << 20
	DefaultRecvBufferMax = 128 << 20

	// pollWindow is how long a deadline-based write or read may wait before
	// it counts as would-block.
	pollWindow = time.Millisecond
)

type Config struct {
	// DialTimeout bounds DialTCP. Zero leaves the OS connect timeout.
	DialTimeout time.Duration

	// KeepAlive is applied to dialed and accepted TCP connections.
	KeepAlive net.KeepAliveConfig

	// MulticastLoopback controls whether a sender's datagrams are delivered
	// to receivers on the same host.
	MulticastLoopback bool

	// RecvBufferMin and RecvBufferMax bound the receive buffer of multicast
	// receivers. Zero selects the defaults.
	RecvBufferMin int
	RecvBufferMax int

	Logger *slog.Logger
}

func (c Config) recvBufferBounds() (lo, hi int) {
	lo, hi = c.RecvBufferMin, c.RecvBufferMax
	if lo <= 0 {
		lo = DefaultRecvBufferMin
	}
	if hi <= 0 {
		hi = DefaultRecvBufferMax
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
