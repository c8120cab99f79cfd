package demo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/die-net/xsocket/internal/xsocket"
)

// Group names one multicast group as seen from a local interface.
type Group struct {
	Interface string
	Address   string
	Port      uint16
	TTL       int
}

// Publisher sends a numbered datagram to a group every PublishInterval.
type Publisher struct {
	mgr   *xsocket.Manager
	group Group
	opts  Options
	log   *slog.Logger
}

func NewPublisher(mgr *xsocket.Manager, g Group, opts Options) *Publisher {
	opts = opts.withDefaults()
	return &Publisher{mgr: mgr, group: g, opts: opts, log: opts.Logger.With("loop", "publisher")}
}

func (p *Publisher) Run(ctx context.Context) error {
	h, err := p.mgr.NewMulticastSender(p.group.Interface, p.group.Address, p.group.Port, p.group.TTL)
	if err != nil {
		return fmt.Errorf("publisher: %w", err)
	}
	defer h.Close()
	p.log.Info("publishing", "group", h.RemoteAddr(), "ttl", p.group.TTL)

	var count int64
	for sleep(ctx, p.opts.PublishInterval) {
		msg := fmt.Appendf(nil, "msg: %d, xxxxx", count)
		count++

		n, err := h.Send(msg)
		switch {
		case err == nil:
			p.log.Debug("sent", "bytes", n)
		case wouldBlock(err):
		default:
			p.log.Warn("send failed", "err", err)
		}
	}
	return nil
}

// Subscriber joins a group and hands every datagram to the sink.
type Subscriber struct {
	mgr   *xsocket.Manager
	group Group
	opts  Options
	log   *slog.Logger
}

func NewSubscriber(mgr *xsocket.Manager, g Group, opts Options) *Subscriber {
	opts = opts.withDefaults()
	return &Subscriber{mgr: mgr, group: g, opts: opts, log: opts.Logger.With("loop", "subscriber")}
}

func (s *Subscriber) Run(ctx context.Context) error {
	h, err := s.mgr.JoinMulticastGroup(s.group.Interface, s.group.Address, s.group.Port)
	if err != nil {
		return fmt.Errorf("subscriber: %w", err)
	}
	defer h.Close()
	s.log.Info("joined", "group", h.RemoteAddr(),
		"rcvbuf_kb", (h.RecvBufferSize()+512)>>10,
		"rcvbuf_applied_kb", (h.RecvBufferApplied()+512)>>10,
	)

	buf := buffers.Get()
	defer buffers.Put(buf)

	group := addrString(h)
	for ctx.Err() == nil {
		n, err := h.ReceiveMulticast(buf)
		switch {
		case err == nil:
			s.log.Info("received", "bytes", n, "data", fmt.Sprintf("%q", buf[:n]))
			s.opts.Sink(group, buf[:n])
		case wouldBlock(err):
			sleep(ctx, s.opts.PollInterval)
		default:
			s.log.Warn("receive failed", "err", err)
			sleep(ctx, s.opts.RetryInterval)
		}
	}
	return nil
}
