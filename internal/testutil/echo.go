package testutil

import (
	"bytes"
	"context"
	"net"
	"testing"
)

// StartEchoTCPServer accepts one connection on 127.0.0.1 and echoes back the
// first read.
func StartEchoTCPServer(t *testing.T, ctx context.Context) net.Listener {
	t.Helper()

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()

		buf := make([]byte, 4096)
		n, err := c.Read(buf)
		if err != nil {
			return
		}
		_, _ = c.Write(buf[:n])
		// Hold the connection until the peer hangs up.
		_, _ = c.Read(buf)
	}()

	return ln
}

func AssertBytes(t *testing.T, got, want []byte) {
	t.Helper()

	if !bytes.Equal(got, want) {
		t.Fatalf("expected %q got %q", want, got)
	}
}
