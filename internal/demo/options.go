package demo

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/die-net/xsocket/internal/xsocket"
)

// Sink receives every payload a loop reads. b is only valid for the
// duration of the call.
type Sink func(src string, b []byte)

type Options struct {
	// AcceptTimeout bounds each accept attempt.
	AcceptTimeout time.Duration
	// AcceptInterval is the pause between accept attempts.
	AcceptInterval time.Duration
	// ServeInterval paces the acceptor's receive/reply cycle.
	ServeInterval time.Duration
	// PollInterval is the pause after a receive that would block.
	PollInterval time.Duration
	// RetryInterval is the pause before re-dialing a dropped connection.
	RetryInterval time.Duration
	// PublishInterval paces multicast sends.
	PublishInterval time.Duration

	Sink   Sink
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.AcceptTimeout <= 0 {
		o.AcceptTimeout = time.Second
	}
	if o.AcceptInterval <= 0 {
		o.AcceptInterval = 100 * time.Millisecond
	}
	if o.ServeInterval <= 0 {
		o.ServeInterval = 200 * time.Millisecond
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 10 * time.Millisecond
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = time.Second
	}
	if o.PublishInterval <= 0 {
		o.PublishInterval = 100 * time.Millisecond
	}
	if o.Sink == nil {
		o.Sink = func(string, []byte) {}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

var buffers = xsocket.NewBufferPool(xsocket.BufferSize)

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func wouldBlock(err error) bool {
	return xsocket.ReasonOf(err) == xsocket.ReasonWouldBlock
}

func addrString(h interface{ RemoteAddr() net.Addr }) string {
	if a := h.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
