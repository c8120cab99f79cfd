package xsocket

import (
	"sync"
)

// BufferPool hands out fixed-size byte slices for send/receive loops.
type BufferPool struct {
	pool sync.Pool
	size int
}

func NewBufferPool(size int) *BufferPool {
	bp := &BufferPool{size: size}
	bp.pool.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return bp
}

func (p *BufferPool) Get() []byte {
	b := p.pool.Get().(*[]byte)
	return (*b)[:p.size]
}

// Put returns b to the pool. Slices of a different capacity are dropped.
func (p *BufferPool) Put(b []byte) {
	if cap(b) != p.size {
		return
	}
	// This &b forces a small heap allocation; there's no way around it when
	// storing a slice in an interface.
	p.pool.Put(&b)
}
