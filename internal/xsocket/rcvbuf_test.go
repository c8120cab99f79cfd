package xsocket

import (
	"testing"
)

func TestClampRecvBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero", in: 0, want: DefaultRecvBufferMin},
		{name: "kernel default", in: 212992, want: DefaultRecvBufferMin},
		{name: "just below", in: DefaultRecvBufferMin - 1, want: DefaultRecvBufferMin},
		{name: "lower bound", in: DefaultRecvBufferMin, want: DefaultRecvBufferMin},
		{name: "inside", in: 64 << 20, want: 64 << 20},
		{name: "upper bound", in: DefaultRecvBufferMax, want: DefaultRecvBufferMax},
		{name: "above", in: 1 << 30, want: DefaultRecvBufferMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampRecvBuffer(tt.in, DefaultRecvBufferMin, DefaultRecvBufferMax); got != tt.want {
				t.Fatalf("got %d want %d", got, tt.want)
			}
		})
	}
}

func TestRecvBufferBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    Config
		lo, hi int
	}{
		{name: "defaults", cfg: Config{}, lo: DefaultRecvBufferMin, hi: DefaultRecvBufferMax},
		{name: "custom", cfg: Config{RecvBufferMin: 1 << 10, RecvBufferMax: 4 << 10}, lo: 1 << 10, hi: 4 << 10},
		{name: "inverted", cfg: Config{RecvBufferMin: 8 << 10, RecvBufferMax: 4 << 10}, lo: 8 << 10, hi: 8 << 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.cfg.recvBufferBounds()
			if lo != tt.lo || hi != tt.hi {
				t.Fatalf("got [%d, %d] want [%d, %d]", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestBufferPool(t *testing.T) {
	t.Parallel()

	p := NewBufferPool(BufferSize)
	b := p.Get()
	if len(b) != BufferSize {
		t.Fatalf("len=%d", len(b))
	}
	p.Put(b[:10])
	if got := p.Get(); len(got) != BufferSize {
		t.Fatalf("reused buffer len=%d", len(got))
	}
	// Foreign slices are dropped rather than pooled.
	p.Put(make([]byte, 3))
}
