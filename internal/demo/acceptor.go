package demo

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/thanhpk/randstr"

	"github.com/die-net/xsocket/internal/xsocket"
)

// Acceptor accepts one TCP link at a time. For each link it periodically
// reads one buffer and answers with a numbered reply.
type Acceptor struct {
	mgr  *xsocket.Manager
	opts Options
	log  *slog.Logger
}

func NewAcceptor(mgr *xsocket.Manager, opts Options) *Acceptor {
	opts = opts.withDefaults()
	return &Acceptor{mgr: mgr, opts: opts, log: opts.Logger.With("loop", "acceptor")}
}

// Listen creates the listening handle. Serve takes ownership of it.
func (a *Acceptor) Listen(ifaceIP string, port uint16) (*xsocket.Handle, error) {
	ln, err := a.mgr.ListenTCP(ifaceIP, port)
	if err != nil {
		return nil, fmt.Errorf("acceptor listen: %w", err)
	}
	return ln, nil
}

// Serve polls ln for links until ctx is done, then closes ln.
func (a *Acceptor) Serve(ctx context.Context, ln *xsocket.Handle) error {
	defer ln.Close()
	a.log.Info("waiting for connect", "addr", ln.LocalAddr())

	for sleep(ctx, a.opts.AcceptInterval) {
		c, err := a.mgr.AcceptTimeout(ln, a.opts.AcceptTimeout)
		if err != nil {
			if xsocket.ReasonOf(err) != xsocket.ReasonTimeout {
				a.log.Warn("accept failed", "err", err)
			}
			continue
		}
		a.serve(ctx, c)
		a.log.Info("waiting for connect", "addr", ln.LocalAddr())
	}
	return nil
}

// link is the part of an accepted handle a session uses.
type link interface {
	Receive(b []byte) (int, error)
	Send(b []byte) (int, error)
	RemoteAddr() net.Addr
	Close() error
}

// serve runs one session until the peer goes away or a send fails, then
// closes c so the next accept starts clean.
func (a *Acceptor) serve(ctx context.Context, c link) {
	defer c.Close()

	peer := addrString(c)
	log := a.log.With("session", randstr.Hex(8), "peer", peer)
	log.Info("new link")

	buf := buffers.Get()
	defer buffers.Put(buf)

	var count int64
	for sleep(ctx, a.opts.ServeInterval) {
		n, err := c.Receive(buf)
		switch {
		case err == nil:
			log.Info("received", "bytes", n, "data", fmt.Sprintf("%q", buf[:n]))
			a.opts.Sink(peer, buf[:n])
		case wouldBlock(err):
		default:
			log.Info("link closed", "err", err)
			return
		}

		count++
		reply := fmt.Appendf(nil, "msg: %d\n", count)
		n, err = c.Send(reply)
		switch {
		case err == nil:
			log.Debug("sent", "bytes", n)
		case wouldBlock(err):
		default:
			log.Warn("send failed", "err", err)
			return
		}
	}
}
