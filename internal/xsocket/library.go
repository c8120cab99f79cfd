package xsocket

import (
	"fmt"
	"sync"
)

// library tracks the process-wide networking subsystem state.
type library struct {
	mu      sync.Mutex
	started bool

	startup func() error
	cleanup func() error
}

var lib = &library{startup: platformStartup, cleanup: platformCleanup}

// Startup initialises the platform networking subsystem. It must be called
// exactly once before any handle is created.
func Startup() error {
	return lib.start()
}

// Shutdown tears down the platform networking subsystem. Every handle must
// already be closed.
func Shutdown() error {
	return lib.stop()
}

// Started reports whether Startup has succeeded without a matching Shutdown.
func Started() bool {
	return lib.isStarted()
}

func (l *library) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return opErr("startup", "", ReasonState, ErrAlreadyStarted)
	}
	if err := l.startup(); err != nil {
		return opErr("startup", "", ReasonCreate, fmt.Errorf("platform init: %w", err))
	}
	l.started = true
	return nil
}

func (l *library) stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		return opErr("shutdown", "", ReasonState, ErrNotStarted)
	}
	l.started = false
	if err := l.cleanup(); err != nil {
		return opErr("shutdown", "", ReasonIO, fmt.Errorf("platform cleanup: %w", err))
	}
	return nil
}

func (l *library) isStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}
