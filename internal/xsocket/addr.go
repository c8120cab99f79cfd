package xsocket

import (
	"fmt"
	"net"
	"net/netip"
)

// parseIPv4 accepts dotted-decimal IPv4 literals only. Hostnames and IPv6
// (including IPv4-mapped forms) are rejected.
func parseIPv4(s string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is4() {
		return netip.Addr{}, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}
	return ip, nil
}

// parseGroup accepts an IPv4 literal inside 224.0.0.0/4.
func parseGroup(s string) (netip.Addr, error) {
	ip, err := parseIPv4(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !ip.IsMulticast() {
		return netip.Addr{}, fmt.Errorf("%s: %w", ip, ErrNotMulticast)
	}
	return ip, nil
}

// IsMulticastGroup reports whether s is an IPv4 literal in 224.0.0.0/4.
func IsMulticastGroup(s string) bool {
	_, err := parseGroup(s)
	return err == nil
}

// interfaceByIP returns the interface that owns ip. The unspecified address
// selects no interface so the OS routing table decides.
func interfaceByIP(ip netip.Addr) (*net.Interface, error) {
	if ip.IsUnspecified() {
		return nil, nil
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipn, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			if got, ok := netip.AddrFromSlice(ipn.IP); ok && got.Unmap() == ip {
				return &ifaces[i], nil
			}
		}
	}
	return nil, fmt.Errorf("no interface owns %s: %w", ip, ErrInvalidAddress)
}

func udpAddr(ap netip.AddrPort) *net.UDPAddr {
	return net.UDPAddrFromAddrPort(ap)
}
