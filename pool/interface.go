/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package pool

import (
	"sync"

	libsiz "github.com/nabbar/golib/size"

	"github.com/sabouaram/pbuffer/buffer"
)

// Pool is a bounded producer/recycler of buffer.Buffer instances.
//
// Pool capacity bounds the number of simultaneously live Buffers, not the
// total number of Buffers ever produced over the Pool's lifetime.
//
// Safe for concurrent use by multiple goroutines, unlike Input and Output.
type Pool interface {
	// Borrow returns a Buffer whose contents are undefined. Fails with
	// ErrClosed if the pool is closed, or ErrExhausted if the bound is
	// reached and nothing is free to recycle.
	Borrow() (buffer.Buffer, error)

	// Recycle returns b to the free list. Fails with ErrForeignBuffer if
	// b was not produced by this Pool, or was already recycled.
	Recycle(b buffer.Buffer) error

	// Close disallows further Borrow calls. If any Buffer borrowed from
	// this Pool is still outstanding, Close returns a leak error (see
	// LeakedCount) but still marks the pool closed.
	Close() error

	// SetLogger installs a diagnostic logging hook, replacing the no-op
	// default. Pass nil to restore the no-op.
	SetLogger(l Logger)

	// SetMetrics attaches a Prometheus-backed Metrics collector,
	// replacing the no-op default. Pass nil to detach.
	SetMetrics(m Metrics)
}

// New creates a Pool that hands out Buffers of the given capacity, bounding
// the number of simultaneously live Buffers at size.
//
// A non-positive size means unbounded (Borrow never returns ErrExhausted).
func New(bufferCapacity int, size libsiz.Size) Pool {
	p := &pl{
		bufCap: bufferCapacity,
		bound:  size.Int(),
		free:   make([]buffer.Buffer, 0),
		live:   make(map[buffer.Buffer]struct{}),
		log:    noopLogger{},
		met:    noopMetrics{},
	}
	return p
}

type pl struct {
	mu     sync.Mutex
	bufCap int
	bound  int
	free   []buffer.Buffer
	live   map[buffer.Buffer]struct{}
	alloc  int
	closed bool
	log    Logger
	met    Metrics
}

func (p *pl) SetLogger(l Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l == nil {
		l = noopLogger{}
	}
	p.log = l
}

func (p *pl) SetMetrics(m Metrics) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m == nil {
		m = noopMetrics{}
	}
	p.met = m
}

func (p *pl) Borrow() (buffer.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.log.Error("borrow on closed pool")
		return nil, ErrClosed
	}

	var b buffer.Buffer

	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free = p.free[:n-1]
	} else if p.bound <= 0 || p.alloc < p.bound {
		b = buffer.New(p.bufCap)
		p.alloc++
	} else {
		p.log.Error("borrow exhausted")
		return nil, ErrExhausted
	}

	p.live[b] = struct{}{}
	p.met.ObserveBorrow(len(p.live))
	return b, nil
}

func (p *pl) Recycle(b buffer.Buffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.live[b]; !ok {
		p.log.Error("recycle of foreign or already-recycled buffer")
		return ErrForeignBuffer
	}

	delete(p.live, b)

	if !p.closed {
		p.free = append(p.free, b)
	}

	p.met.ObserveRecycle(len(p.live))
	return nil
}

func (p *pl) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.free = nil

	if n := len(p.live); n > 0 {
		p.met.ObserveLeak(n)
		p.log.Error("pool closed with outstanding buffers")
		return newLeakError(n)
	}

	return nil
}
