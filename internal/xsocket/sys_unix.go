//go:build unix

package xsocket

import (
	"errors"
	"net"
	"net/netip"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

var defaultBinder groupBinder = anyAddrBinder{}

func platformStartup() error { return nil }

func platformCleanup() error { return nil }

func rawConn(c any) (syscall.RawConn, error) {
	sc, ok := c.(syscall.Conn)
	if !ok {
		return nil, errors.New("connection does not expose a raw socket")
	}
	return sc.SyscallConn()
}

// recvNonblock issues a single recvfrom on the socket. The runtime keeps
// network sockets in O_NONBLOCK mode, so an empty queue surfaces as EAGAIN
// instead of parking the goroutine.
func recvNonblock(c net.Conn, b []byte) (int, net.Addr, error) {
	rc, err := rawConn(c)
	if err != nil {
		return 0, nil, err
	}

	var (
		n    int
		from unix.Sockaddr
		serr error
	)
	err = rc.Read(func(fd uintptr) bool {
		n, from, serr = unix.Recvfrom(int(fd), b, 0)
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	if serr != nil {
		if serr == unix.EAGAIN || serr == unix.EWOULDBLOCK {
			return 0, nil, ErrWouldBlock
		}
		return 0, nil, os.NewSyscallError("recvfrom", serr)
	}
	return n, sockaddrToAddr(from), nil
}

func sendNonblock(c net.Conn, b []byte) (int, error) {
	rc, err := rawConn(c)
	if err != nil {
		return 0, err
	}

	var (
		n    int
		serr error
	)
	err = rc.Write(func(fd uintptr) bool {
		n, serr = unix.Write(int(fd), b)
		return true
	})
	if err != nil {
		return 0, err
	}
	if serr != nil {
		if serr == unix.EAGAIN || serr == unix.EWOULDBLOCK {
			return 0, ErrWouldBlock
		}
		return 0, os.NewSyscallError("write", serr)
	}
	return n, nil
}

// sendToNonblock issues a single sendto of one datagram to dst.
func sendToNonblock(c *net.UDPConn, b []byte, dst netip.AddrPort) (int, error) {
	rc, err := c.SyscallConn()
	if err != nil {
		return 0, err
	}

	sa := &unix.SockaddrInet4{Port: int(dst.Port()), Addr: dst.Addr().As4()}
	var serr error
	err = rc.Write(func(fd uintptr) bool {
		serr = unix.Sendto(int(fd), b, 0, sa)
		return true
	})
	if err != nil {
		return 0, err
	}
	if serr != nil {
		if serr == unix.EAGAIN || serr == unix.EWOULDBLOCK {
			return 0, ErrWouldBlock
		}
		return 0, os.NewSyscallError("sendto", serr)
	}
	return len(b), nil
}

// setBacklog re-issues listen(2) on an already listening socket, which
// resizes its accept queue.
func setBacklog(ln *net.TCPListener, backlog int) error {
	rc, err := ln.SyscallConn()
	if err != nil {
		return err
	}
	var serr error
	if err := rc.Control(func(fd uintptr) {
		serr = unix.Listen(int(fd), backlog)
	}); err != nil {
		return err
	}
	return os.NewSyscallError("listen", serr)
}

func getRecvBuffer(c *net.UDPConn) (int, error) {
	rc, err := c.SyscallConn()
	if err != nil {
		return 0, err
	}
	var (
		size int
		serr error
	)
	if err := rc.Control(func(fd uintptr) {
		size, serr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF)
	}); err != nil {
		return 0, err
	}
	if serr != nil {
		return 0, os.NewSyscallError("getsockopt", serr)
	}
	return size, nil
}

func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var serr error
	if err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return os.NewSyscallError("setsockopt", serr)
}

func sockaddrToAddr(sa unix.Sockaddr) net.Addr {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.UDPAddr{IP: net.IPv4(sa.Addr[0], sa.Addr[1], sa.Addr[2], sa.Addr[3]), Port: sa.Port}
	default:
		return nil
	}
}
