package demo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/die-net/xsocket/internal/xsocket"
)

// Connector keeps one TCP connection to a server and reads from it,
// re-dialing after any failure.
type Connector struct {
	mgr  *xsocket.Manager
	opts Options
	log  *slog.Logger

	serverIP string
	port     uint16
}

func NewConnector(mgr *xsocket.Manager, serverIP string, port uint16, opts Options) *Connector {
	opts = opts.withDefaults()
	return &Connector{
		mgr:      mgr,
		opts:     opts,
		log:      opts.Logger.With("loop", "connector"),
		serverIP: serverIP,
		port:     port,
	}
}

func (c *Connector) Run(ctx context.Context) error {
	var h *xsocket.Handle
	defer func() { _ = h.Close() }()

	buf := buffers.Get()
	defer buffers.Put(buf)

	for ctx.Err() == nil {
		if !h.Valid() {
			var err error
			h, err = c.mgr.DialTCP(ctx, c.serverIP, c.port)
			if err != nil {
				c.log.Warn("connect failed", "err", err)
				if !sleep(ctx, c.opts.RetryInterval) {
					break
				}
				continue
			}
			c.log.Info("connected", "local", h.LocalAddr(), "peer", h.RemoteAddr())
		}

		n, err := h.Receive(buf)
		switch {
		case err == nil:
			c.log.Info("received", "bytes", n, "data", fmt.Sprintf("%q", buf[:n]))
			c.opts.Sink(addrString(h), buf[:n])
		case wouldBlock(err):
			sleep(ctx, c.opts.PollInterval)
		default:
			c.log.Warn("receive failed, reconnecting", "err", err)
			_ = h.Close()
			sleep(ctx, c.opts.RetryInterval)
		}
	}
	return nil
}
