// Package xsocket is a small IPv4 socket wrapper used by the xsocket demo.
//
// It exposes TCP listen/accept/connect, unicast UDP send, and multicast
// send/receive over handles that are owned by exactly one goroutine. Send and
// receive never block: a socket with nothing to read (or no room to write)
// reports ErrWouldBlock, which callers distinguish from real failures with
// errors.Is or ReasonOf.
//
// The platform networking subsystem must be started once with Startup before
// any handle is created and stopped with Shutdown after every handle is
// closed. On Windows this maps to WSAStartup/WSACleanup; elsewhere both are
// bookkeeping only.
package xsocket
