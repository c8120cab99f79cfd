package xsocket

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"golang.org/x/net/ipv4"
)

// groupBinder chooses the local address a multicast receiver binds before
// joining. Unix stacks deliver group traffic only to sockets bound to the
// wildcard (or group) address; Windows expects the interface address.
type groupBinder interface {
	bindAddr(iface, group netip.Addr, port uint16) netip.AddrPort
}

// anyAddrBinder binds 0.0.0.0:port.
type anyAddrBinder struct{}

func (anyAddrBinder) bindAddr(_, _ netip.Addr, port uint16) netip.AddrPort {
	return netip.AddrPortFrom(netip.IPv4Unspecified(), port)
}

// interfaceBinder binds iface:port.
type interfaceBinder struct{}

func (interfaceBinder) bindAddr(iface, _ netip.Addr, port uint16) netip.AddrPort {
	return netip.AddrPortFrom(iface, port)
}

// NewMulticastSender returns a UDP handle connected to groupIP:port so Send
// needs no destination. Datagrams leave through the interface owning
// ifaceIP with the given ttl. Loopback follows Config.MulticastLoopback.
func (m *Manager) NewMulticastSender(ifaceIP, groupIP string, port uint16, ttl int) (*Handle, error) {
	const op = "create multicast sender"
	if err := m.ready(op); err != nil {
		return nil, err
	}
	group, err := parseGroup(groupIP)
	if err != nil {
		return nil, opErr(op, groupIP, ReasonAddress, err)
	}
	if ttl < 0 || ttl > 255 {
		return nil, opErr(op, groupIP, ReasonAddress, fmt.Errorf("%d: %w", ttl, ErrInvalidTTL))
	}
	iface, err := parseIPv4(ifaceIP)
	if err != nil {
		return nil, opErr(op, ifaceIP, ReasonAddress, err)
	}
	ifi, err := interfaceByIP(iface)
	if err != nil {
		return nil, opErr(op, ifaceIP, ReasonAddress, err)
	}
	dst := netip.AddrPortFrom(group, port)

	d := net.Dialer{
		LocalAddr: udpAddr(netip.AddrPortFrom(netip.IPv4Unspecified(), port)),
		Control:   reuseAddrControl,
	}
	c, err := d.DialContext(context.Background(), "udp4", dst.String())
	if err != nil {
		return nil, opErr(op, dst.String(), ReasonCreate, err)
	}
	uc := c.(*net.UDPConn)
	pc := ipv4.NewPacketConn(uc)

	fail := func(what string, err error) (*Handle, error) {
		_ = uc.Close()
		return nil, opErr(op, dst.String(), ReasonCreate, fmt.Errorf("%s: %w", what, err))
	}
	if err := pc.SetMulticastLoopback(m.cfg.MulticastLoopback); err != nil {
		return fail("set loopback", err)
	}
	if err := pc.SetMulticastTTL(ttl); err != nil {
		return fail("set ttl", err)
	}
	if ifi != nil {
		if err := pc.SetMulticastInterface(ifi); err != nil {
			return fail("set interface", err)
		}
	}

	return &Handle{kind: KindMulticastSender, conn: uc, pc: pc, group: udpAddr(dst)}, nil
}

// JoinMulticastGroup returns a UDP handle that has joined groupIP on the
// interface owning ifaceIP and receives on port. Its receive buffer is
// clamped into the configured bounds.
func (m *Manager) JoinMulticastGroup(ifaceIP, groupIP string, port uint16) (*Handle, error) {
	const op = "join multicast group"
	if err := m.ready(op); err != nil {
		return nil, err
	}
	group, err := parseGroup(groupIP)
	if err != nil {
		return nil, opErr(op, groupIP, ReasonAddress, err)
	}
	iface, err := parseIPv4(ifaceIP)
	if err != nil {
		return nil, opErr(op, ifaceIP, ReasonAddress, err)
	}
	ifi, err := interfaceByIP(iface)
	if err != nil {
		return nil, opErr(op, ifaceIP, ReasonAddress, err)
	}
	laddr := m.binder.bindAddr(iface, group, port)

	lc := net.ListenConfig{Control: reuseAddrControl}
	c, err := lc.ListenPacket(context.Background(), "udp4", laddr.String())
	if err != nil {
		return nil, opErr(op, laddr.String(), ReasonCreate, err)
	}
	uc := c.(*net.UDPConn)
	pc := ipv4.NewPacketConn(uc)
	gaddr := udpAddr(netip.AddrPortFrom(group, port))

	fail := func(what string, err error) (*Handle, error) {
		_ = uc.Close()
		return nil, opErr(op, gaddr.String(), ReasonCreate, fmt.Errorf("%s: %w", what, err))
	}
	if err := pc.JoinGroup(ifi, gaddr); err != nil {
		return fail("add membership", err)
	}
	requested, applied, err := m.applyRecvBuffer(uc)
	if err != nil {
		return fail("receive buffer", err)
	}

	return &Handle{
		kind:          KindMulticastReceiver,
		conn:          uc,
		pc:            pc,
		group:         gaddr,
		rcvbuf:        requested,
		rcvbufApplied: applied,
	}, nil
}
