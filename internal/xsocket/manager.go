package xsocket

import (
	"log/slog"
)

// Manager creates handles. It holds configuration only; handles carry their
// own state, so one Manager may be shared by several goroutines.
type Manager struct {
	cfg    Config
	log    *slog.Logger
	lib    *library
	binder groupBinder
}

func New(cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{cfg: cfg, log: log, lib: lib, binder: defaultBinder}
}

func (m *Manager) ready(op string) error {
	if !m.lib.isStarted() {
		return opErr(op, "", ReasonState, ErrNotStarted)
	}
	return nil
}
