package xsocket

import (
	"errors"
	"testing"
)

func TestLibraryLifecycle(t *testing.T) {
	t.Parallel()

	var starts, cleanups int
	l := &library{
		startup: func() error { starts++; return nil },
		cleanup: func() error { cleanups++; return nil },
	}

	if err := l.stop(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("stop before start: got %v", err)
	}
	if err := l.start(); err != nil {
		t.Fatal(err)
	}
	if !l.isStarted() {
		t.Fatal("expected started")
	}
	if err := l.start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second start: got %v", err)
	}
	if err := l.stop(); err != nil {
		t.Fatal(err)
	}
	if l.isStarted() {
		t.Fatal("expected stopped")
	}
	if err := l.start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if starts != 2 || cleanups != 1 {
		t.Fatalf("starts=%d cleanups=%d", starts, cleanups)
	}
}

func TestLibraryStartupFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	l := &library{
		startup: func() error { return boom },
		cleanup: func() error { return nil },
	}
	err := l.start()
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if ReasonOf(err) != ReasonCreate {
		t.Fatalf("reason=%v", ReasonOf(err))
	}
	if l.isStarted() {
		t.Fatal("failed startup must leave library stopped")
	}
}

func TestManagerRequiresStartup(t *testing.T) {
	t.Parallel()

	m := New(Config{})
	m.lib = &library{startup: func() error { return nil }, cleanup: func() error { return nil }}

	if _, err := m.ListenTCP("127.0.0.1", 0); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("ListenTCP: got %v", err)
	}
	if _, err := m.DialTCP(t.Context(), "127.0.0.1", 1); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("DialTCP: got %v", err)
	}
	if _, err := m.NewMulticastSender("127.0.0.1", "233.1.1.101", 0, 2); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("NewMulticastSender: got %v", err)
	}
	if _, err := m.JoinMulticastGroup("127.0.0.1", "233.1.1.101", 0); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("JoinMulticastGroup: got %v", err)
	}
	if _, err := m.NewUDPSender("127.0.0.1", 1); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("NewUDPSender: got %v", err)
	}
}

func TestStartedReflectsProcessState(t *testing.T) {
	t.Parallel()

	if !Started() {
		t.Fatal("TestMain should have started the library")
	}
}
