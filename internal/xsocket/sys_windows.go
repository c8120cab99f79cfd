//go:build windows

package xsocket

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

var defaultBinder groupBinder = interfaceBinder{}

const winsockVersion = 0x0202

func platformStartup() error {
	var d windows.WSAData
	if err := windows.WSAStartup(winsockVersion, &d); err != nil {
		return fmt.Errorf("WSAStartup: %w", err)
	}
	if d.Version != winsockVersion {
		_ = windows.WSACleanup()
		return fmt.Errorf("WSAStartup: winsock %d.%d unavailable", winsockVersion&0xff, winsockVersion>>8)
	}
	return nil
}

func platformCleanup() error {
	return windows.WSACleanup()
}

// Overlapped sockets have no EAGAIN; a read or write that cannot finish
// within pollWindow is reported as would-block instead.
func recvNonblock(c net.Conn, b []byte) (int, net.Addr, error) {
	_ = c.SetReadDeadline(time.Now().Add(pollWindow))
	defer c.SetReadDeadline(time.Time{})

	var (
		n    int
		from net.Addr
		err  error
	)
	if uc, ok := c.(*net.UDPConn); ok {
		var ua *net.UDPAddr
		n, ua, err = uc.ReadFromUDP(b)
		if ua != nil {
			from = ua
		}
	} else {
		n, err = c.Read(b)
	}
	switch {
	case err == nil:
		return n, from, nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return 0, nil, ErrWouldBlock
	case errors.Is(err, io.EOF):
		return 0, nil, nil
	default:
		return 0, nil, err
	}
}

func sendNonblock(c net.Conn, b []byte) (int, error) {
	_ = c.SetWriteDeadline(time.Now().Add(pollWindow))
	defer c.SetWriteDeadline(time.Time{})

	n, err := c.Write(b)
	if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		return n, ErrWouldBlock
	}
	return n, err
}

func sendToNonblock(c *net.UDPConn, b []byte, dst netip.AddrPort) (int, error) {
	_ = c.SetWriteDeadline(time.Now().Add(pollWindow))
	defer c.SetWriteDeadline(time.Time{})

	n, err := c.WriteToUDPAddrPort(b, dst)
	if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		return n, ErrWouldBlock
	}
	return n, err
}

// Winsock has no way to resize the queue of a listening socket; the
// runtime's SOMAXCONN backlog stays in effect.
func setBacklog(_ *net.TCPListener, _ int) error {
	return nil
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
		size, serr = windows.GetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_RCVBUF)
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
		serr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return os.NewSyscallError("setsockopt", serr)
}
