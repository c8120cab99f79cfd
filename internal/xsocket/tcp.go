package xsocket

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"os"
	"time"
)

// ListenTCP binds ifaceIP:port and listens with a backlog of ListenBacklog.
// Port zero picks an ephemeral port; see LocalAddr.
func (m *Manager) ListenTCP(ifaceIP string, port uint16) (*Handle, error) {
	const op = "listen tcp"
	if err := m.ready(op); err != nil {
		return nil, err
	}
	ip, err := parseIPv4(ifaceIP)
	if err != nil {
		return nil, opErr(op, ifaceIP, ReasonAddress, err)
	}
	addr := netip.AddrPortFrom(ip, port).String()

	lc := net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp4", addr)
	if err != nil {
		return nil, opErr(op, addr, ReasonCreate, err)
	}
	tl := ln.(*net.TCPListener)

	if err := setBacklog(tl, ListenBacklog); err != nil {
		_ = tl.Close()
		return nil, opErr(op, addr, ReasonCreate, err)
	}

	return &Handle{kind: KindTCPListener, ln: tl}, nil
}

// AcceptTimeout waits up to timeout for one pending connection on ln and
// accepts it. It is single-shot: on ErrTimeout the caller polls again.
func (m *Manager) AcceptTimeout(ln *Handle, timeout time.Duration) (*Handle, error) {
	const op = "accept"
	if err := ln.check(op, KindTCPListener); err != nil {
		return nil, err
	}
	addr := ln.ln.Addr().String()

	if err := ln.ln.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, opErr(op, addr, ReasonIO, err)
	}
	c, err := ln.ln.AcceptTCP()
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, opErr(op, addr, ReasonTimeout, ErrTimeout)
		}
		return nil, opErr(op, addr, ReasonIO, err)
	}
	_ = c.SetKeepAliveConfig(m.cfg.KeepAlive)

	return &Handle{kind: KindTCPConn, conn: c}, nil
}

// DialTCP connects to serverIP:port. The connect is bounded by ctx and, when
// non-zero, Config.DialTimeout.
func (m *Manager) DialTCP(ctx context.Context, serverIP string, port uint16) (*Handle, error) {
	const op = "dial tcp"
	if err := m.ready(op); err != nil {
		return nil, err
	}
	ip, err := parseIPv4(serverIP)
	if err != nil {
		return nil, opErr(op, serverIP, ReasonAddress, err)
	}
	addr := netip.AddrPortFrom(ip, port).String()

	d := net.Dialer{Timeout: m.cfg.DialTimeout}
	c, err := d.DialContext(ctx, "tcp4", addr)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return nil, opErr(op, addr, ReasonTimeout, errors.Join(ErrTimeout, err))
		}
		return nil, opErr(op, addr, ReasonCreate, err)
	}

	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.SetKeepAliveConfig(m.cfg.KeepAlive)
	}

	return &Handle{kind: KindTCPConn, conn: c}, nil
}
