package xsocket

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestReasonOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{name: "nil", err: nil, want: ReasonUnknown},
		{name: "op error", err: opErr("send", "", ReasonIO, io.ErrClosedPipe), want: ReasonIO},
		{name: "wrapped op error", err: fmt.Errorf("loop: %w", opErr("accept", "", ReasonTimeout, ErrTimeout)), want: ReasonTimeout},
		{name: "bare would-block", err: ErrWouldBlock, want: ReasonWouldBlock},
		{name: "bare not multicast", err: fmt.Errorf("x: %w", ErrNotMulticast), want: ReasonAddress},
		{name: "bare invalid handle", err: ErrInvalidHandle, want: ReasonState},
		{name: "foreign", err: errors.New("other"), want: ReasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReasonOf(tt.err); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestOpErrorFormatting(t *testing.T) {
	t.Parallel()

	err := opErr("dial tcp", "127.0.0.1:1012", ReasonCreate, io.ErrUnexpectedEOF)
	if got, want := err.Error(), "dial tcp 127.0.0.1:1012: unexpected EOF"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("expected Unwrap to expose the cause")
	}

	err = opErr("startup", "", ReasonState, ErrAlreadyStarted)
	if got, want := err.Error(), "startup: xsocket: library already started"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
