package demo

import (
	"fmt"
	"os"
	"testing"

	"github.com/die-net/xsocket/internal/xsocket"
)

func TestMain(m *testing.M) {
	if err := xsocket.Startup(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := m.Run()
	_ = xsocket.Shutdown()
	os.Exit(code)
}
