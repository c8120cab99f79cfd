package xsocket

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted     = errors.New("xsocket: library not started")
	ErrAlreadyStarted = errors.New("xsocket: library already started")
	ErrInvalidHandle  = errors.New("xsocket: invalid handle")
	ErrWrongKind      = errors.New("xsocket: operation not supported by handle kind")
	ErrWouldBlock     = errors.New("xsocket: operation would block")
	ErrTimeout        = errors.New("xsocket: timed out")
	ErrInvalidAddress = errors.New("xsocket: invalid IPv4 address")
	ErrNotMulticast   = errors.New("xsocket: not a multicast group address")
	ErrInvalidTTL     = errors.New("xsocket: ttl out of range")
	ErrBufferTooLarge = errors.New("xsocket: buffer exceeds per-operation limit")
)

// Reason classifies a failure so callers can pick a retry policy without
// inspecting platform error codes.
type Reason uint8

const (
	ReasonUnknown Reason = iota
	// ReasonState covers calls made in the wrong lifecycle state: library
	// not started, handle closed, or handle of the wrong kind.
	ReasonState
	// ReasonAddress means the input was rejected before any socket existed.
	ReasonAddress
	// ReasonCreate covers socket, bind, listen, connect and option failures.
	ReasonCreate
	ReasonTimeout
	ReasonWouldBlock
	ReasonPeerClosed
	ReasonIO
)

func (r Reason) String() string {
	switch r {
	case ReasonState:
		return "state"
	case ReasonAddress:
		return "address"
	case ReasonCreate:
		return "create"
	case ReasonTimeout:
		return "timeout"
	case ReasonWouldBlock:
		return "would-block"
	case ReasonPeerClosed:
		return "peer-closed"
	case ReasonIO:
		return "io"
	default:
		return "unknown"
	}
}

// OpError describes a failed operation on a handle or address.
type OpError struct {
	Op     string
	Addr   string
	Reason Reason
	Err    error
}

func (e *OpError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ReasonOf reports the failure class of err. A nil error has ReasonUnknown.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonUnknown
	}
	var oe *OpError
	if errors.As(err, &oe) && oe.Reason != ReasonUnknown {
		return oe.Reason
	}
	switch {
	case errors.Is(err, ErrWouldBlock):
		return ReasonWouldBlock
	case errors.Is(err, ErrTimeout):
		return ReasonTimeout
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrNotMulticast), errors.Is(err, ErrInvalidTTL):
		return ReasonAddress
	case errors.Is(err, ErrNotStarted), errors.Is(err, ErrAlreadyStarted),
		errors.Is(err, ErrInvalidHandle), errors.Is(err, ErrWrongKind):
		return ReasonState
	default:
		return ReasonUnknown
	}
}

func opErr(op, addr string, reason Reason, err error) *OpError {
	return &OpError{Op: op, Addr: addr, Reason: reason, Err: err}
}
