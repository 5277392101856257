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

package output

import (
	"github.com/sabouaram/pbuffer/buffer"
	"github.com/sabouaram/pbuffer/pool"
)

// FlushFunc is invoked with the range [start, end) of b that the Output has
// finished writing. Implementations must not retain b past return. Errors
// propagate verbatim to the public Output method that triggered the flush.
type FlushFunc func(b buffer.Buffer, start, end int) error

// Output accumulates writes into a pooled Buffer and flushes it to an
// external sink, either because the Buffer filled or because the caller
// asked explicitly. Not safe for concurrent use.
type Output interface {
	// WriteByte appends one byte, borrowing a Buffer from the pool if none
	// is current, and flushing when the current Buffer fills.
	WriteByte(b byte) error

	// WriteBuffer appends the full contents of src. If src does not fit in
	// the remaining room of the current Buffer, the current Buffer (if
	// any) is flushed first, then src is forwarded directly to the flush
	// callback in a single call, bypassing the pool entirely.
	WriteBuffer(src buffer.Buffer) (int, error)

	// TransferFrom is the zero-copy entry point used by input.Input: it
	// first flushes any pending bytes of the current Buffer, then delivers
	// the range [start, end) of b to the flush callback as if b were the
	// Output's own current Buffer. b itself is never borrowed from or
	// recycled to this Output's pool: ownership/recycling of b remains the
	// caller's responsibility.
	TransferFrom(b buffer.Buffer, start, end int) (int, error)

	// Flush delivers the current Buffer (if writeIndex > 0) to the sink
	// and releases it back to the pool.
	Flush() error

	// Close flushes, marks the Output closed, then closes the external
	// sink. Idempotent: a second Close succeeds without re-flushing.
	Close() error

	// SetLogger installs a diagnostic logging hook. Pass nil to restore
	// the no-op default.
	SetLogger(l Logger)
}

// New builds an Output that borrows Buffers of bufferCapacity from p,
// delivers full or flushed ranges to flush, and calls closeSink (if
// non-nil) once from Close.
func New(p pool.Pool, bufferCapacity int, flush FlushFunc, closeSink func() error) Output {
	return &out{
		pool:      p,
		bufCap:    bufferCapacity,
		flush:     flush,
		closeSink: closeSink,
		log:       noopLogger{},
	}
}

type out struct {
	pool      pool.Pool
	bufCap    int
	flush     FlushFunc
	closeSink func() error

	cur    buffer.Buffer
	idx    int
	closed bool
	log    Logger
}

func (o *out) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	o.log = l
}

func (o *out) WriteByte(b byte) error {
	if o.closed {
		return ErrClosed
	}

	if o.cur == nil {
		nb, err := o.pool.Borrow()
		if err != nil {
			o.log.Error("output: borrow failed", err)
			return err
		}
		o.cur = nb
		o.idx = 0
	}

	o.cur.Set(o.idx, b)
	o.idx++

	if o.idx == o.cur.Capacity() {
		return o.flushCurrent()
	}
	return nil
}

func (o *out) WriteBuffer(src buffer.Buffer) (int, error) {
	if o.closed {
		return 0, ErrClosed
	}

	n := src.Capacity()

	if o.cur == nil && n < o.bufCap {
		nb, err := o.pool.Borrow()
		if err != nil {
			o.log.Error("output: borrow failed", err)
			return 0, err
		}
		o.cur, o.idx = nb, 0
	}

	if o.cur != nil {
		if remaining := o.cur.Capacity() - o.idx; n <= remaining {
			src.CopyTo(o.cur, 0, n, o.idx)
			o.idx += n
			if o.idx == o.cur.Capacity() {
				if err := o.flushCurrent(); err != nil {
					return 0, err
				}
			}
			return n, nil
		}
	}

	if err := o.flushCurrent(); err != nil {
		return 0, err
	}

	if err := o.flush(src, 0, n); err != nil {
		o.log.Error("output: flush of direct write failed", err)
		return 0, err
	}
	return n, nil
}

func (o *out) TransferFrom(b buffer.Buffer, start, end int) (int, error) {
	if o.closed {
		return 0, ErrClosed
	}

	if err := o.flushCurrent(); err != nil {
		return 0, err
	}

	if err := o.flush(b, start, end); err != nil {
		o.log.Error("output: transfer flush failed", err)
		return 0, err
	}
	return end - start, nil
}

func (o *out) Flush() error {
	if o.closed {
		return ErrClosed
	}
	return o.flushCurrent()
}

func (o *out) flushCurrent() error {
	if o.cur == nil || o.idx == 0 {
		return nil
	}

	b, n := o.cur, o.idx
	o.cur, o.idx = nil, 0

	if err := o.flush(b, 0, n); err != nil {
		o.log.Error("output: flush failed", err)
		_ = o.pool.Recycle(b)
		return err
	}
	return o.pool.Recycle(b)
}

func (o *out) Close() error {
	if o.closed {
		return nil
	}

	ferr := o.flushCurrent()
	o.closed = true

	var cerr error
	if o.closeSink != nil {
		cerr = o.closeSink()
	}

	if ferr != nil {
		return ferr
	}
	return cerr
}
