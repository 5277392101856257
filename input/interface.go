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

package input

import (
	"github.com/sabouaram/pbuffer/buffer"
	"github.com/sabouaram/pbuffer/output"
	"github.com/sabouaram/pbuffer/pool"
)

// FillFunc populates the range [start, end) of b and returns the number of
// bytes actually written, in [0, end-start]. A return of 0 signals EOF for
// that attempt. The Input keeps no EOF state of its own: a later read that
// needs more bytes calls FillFunc again, even after it has returned 0.
type FillFunc func(b buffer.Buffer, start, end int) (int, error)

// Input is a pull-based reader that lazily fills pooled Buffers from a
// FillFunc and exposes byte-level and bulk read primitives over the
// resulting FIFO. Not safe for concurrent use.
type Input interface {
	// ReadByte returns the next byte, or ErrEOFUnderflow if none remain.
	ReadByte() (byte, error)

	// ReadByteArray reads exactly n bytes, or, if n < 0, reads all
	// remaining bytes until EOF.
	ReadByteArray(n int) ([]byte, error)

	// EOF reports whether no buffered bytes remain and one more fill
	// attempt also yielded nothing.
	EOF() (bool, error)

	// Prefetch ensures at least n bytes are buffered, without consuming
	// them. Returns false if EOF is reached before n bytes accumulate.
	Prefetch(n int) (bool, error)

	// Discard consumes and drops exactly n bytes, failing with
	// ErrEOFUnderflow if fewer are available.
	Discard(n int) error

	// Preview runs block with reads that do not consume from the outer
	// stream: on return, every buffered readIndex is restored to its
	// pre-preview value. Nestable.
	Preview(block func() error) error

	// ReadAvailableToOutput hands the Input's current filled Buffer (or
	// one freshly filled if none is buffered) to o's flush path without
	// copying, returning the number of bytes transferred (0 at EOF).
	ReadAvailableToOutput(o output.Output) (int, error)

	// ReadAvailableToBuffer fills b directly via the FillFunc starting at
	// start, bypassing the pool and the FIFO entirely, and returns the
	// new write index (start + count written).
	ReadAvailableToBuffer(b buffer.Buffer, start int) (int, error)

	// CopyTo streams bytes to o using ReadAvailableToOutput. If size < 0,
	// streams until EOF and returns the total transferred. Otherwise
	// transfers exactly size bytes, splitting the final Buffer as needed.
	CopyTo(o output.Output, size int64) (int64, error)

	// ReadUntil consumes bytes up to but not including the first byte for
	// which predicate returns true, returning the count consumed. Returns
	// cleanly at EOF if predicate never matches.
	ReadUntil(predicate func(b byte) bool) (int, error)

	// Close recycles every buffer still held, closes the source, and
	// marks the Input closed. Idempotent.
	Close() error

	// SetLogger installs a diagnostic logging hook. Pass nil to restore
	// the no-op default.
	SetLogger(l Logger)
}

type entry struct {
	b     buffer.Buffer
	read  int
	write int
}

type checkpoint struct {
	cur  int
	read int
}

// New builds an Input that borrows Buffers of bufferCapacity from p and
// fills them via fill, calling closeSource (if non-nil) once from Close.
func New(p pool.Pool, bufferCapacity int, fill FillFunc, closeSource func() error) Input {
	return &inp{
		pool:        p,
		bufCap:      bufferCapacity,
		fill:        fill,
		closeSource: closeSource,
		log:         noopLogger{},
	}
}

type inp struct {
	pool        pool.Pool
	bufCap      int
	fill        FillFunc
	closeSource func() error

	fifo         []entry
	cur          int
	previewStack []checkpoint
	closed       bool
	log          Logger
}

func (i *inp) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	i.log = l
}

// ensureMore borrows a fresh Buffer, fills it once, and appends it to the
// FIFO. Returns (true, nil) if bytes became available, (false, nil) on
// clean EOF, or (false, err) if fill failed - in which case the borrowed
// Buffer is recycled immediately since it was never enqueued.
func (i *inp) ensureMore() (bool, error) {
	nb, err := i.pool.Borrow()
	if err != nil {
		i.log.Error("input: borrow failed", err)
		return false, err
	}

	count, ferr := i.fill(nb, 0, i.bufCap)
	if ferr != nil {
		_ = i.pool.Recycle(nb)
		return false, ferr
	}
	if count == 0 {
		_ = i.pool.Recycle(nb)
		return false, nil
	}

	i.fifo = append(i.fifo, entry{b: nb, read: 0, write: count})
	return true, nil
}

// maybeEvict recycles and drops fully-consumed entries from the front of
// the FIFO, but only when no preview checkpoint references earlier state -
// indices must stay stable for the duration of any active preview.
func (i *inp) maybeEvict() {
	if len(i.previewStack) > 0 {
		return
	}
	for i.cur > 0 {
		front := i.fifo[0]
		_ = i.pool.Recycle(front.b)
		i.fifo = i.fifo[1:]
		i.cur--
	}
}

func (i *inp) skipExhausted() {
	for i.cur < len(i.fifo) && i.fifo[i.cur].read >= i.fifo[i.cur].write {
		i.cur++
	}
	i.maybeEvict()
}

// readByteOrEOF returns the next byte, or eof=true on clean exhaustion, or
// a non-nil err propagated verbatim from fill.
func (i *inp) readByteOrEOF() (b byte, eof bool, err error) {
	for {
		i.skipExhausted()
		if i.cur < len(i.fifo) {
			e := &i.fifo[i.cur]
			v := e.b.Get(e.read)
			e.read++
			if e.read == e.write {
				i.cur++
				i.maybeEvict()
			}
			return v, false, nil
		}

		ok, ferr := i.ensureMore()
		if ferr != nil {
			return 0, false, ferr
		}
		if !ok {
			return 0, true, nil
		}
	}
}

// peekByte is readByteOrEOF without consuming the byte.
func (i *inp) peekByte() (b byte, eof bool, err error) {
	for {
		i.skipExhausted()
		if i.cur < len(i.fifo) {
			return i.fifo[i.cur].b.Get(i.fifo[i.cur].read), false, nil
		}

		ok, ferr := i.ensureMore()
		if ferr != nil {
			return 0, false, ferr
		}
		if !ok {
			return 0, true, nil
		}
	}
}

func (i *inp) bufferedCount() int {
	n := 0
	for idx := i.cur; idx < len(i.fifo); idx++ {
		n += i.fifo[idx].write - i.fifo[idx].read
	}
	return n
}

func (i *inp) ReadByte() (byte, error) {
	if i.closed {
		return 0, ErrClosed
	}
	b, eof, err := i.readByteOrEOF()
	if err != nil {
		return 0, err
	}
	if eof {
		return 0, ErrEOFUnderflow
	}
	return b, nil
}

func (i *inp) ReadByteArray(n int) ([]byte, error) {
	if i.closed {
		return nil, ErrClosed
	}

	if n < 0 {
		var out []byte
		for {
			b, eof, err := i.readByteOrEOF()
			if err != nil {
				return nil, err
			}
			if eof {
				return out, nil
			}
			out = append(out, b)
		}
	}

	out := make([]byte, 0, n)
	for len(out) < n {
		b, eof, err := i.readByteOrEOF()
		if err != nil {
			return nil, err
		}
		if eof {
			return nil, ErrEOFUnderflow
		}
		out = append(out, b)
	}
	return out, nil
}

func (i *inp) EOF() (bool, error) {
	if i.closed {
		return false, ErrClosed
	}
	i.skipExhausted()
	if i.cur < len(i.fifo) {
		return false, nil
	}
	ok, err := i.ensureMore()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (i *inp) Prefetch(n int) (bool, error) {
	if i.closed {
		return false, ErrClosed
	}
	for i.bufferedCount() < n {
		ok, err := i.ensureMore()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (i *inp) Discard(n int) error {
	if i.closed {
		return ErrClosed
	}
	for remaining := n; remaining > 0; remaining-- {
		_, eof, err := i.readByteOrEOF()
		if err != nil {
			return err
		}
		if eof {
			return ErrEOFUnderflow
		}
	}
	return nil
}

func (i *inp) ReadUntil(predicate func(b byte) bool) (int, error) {
	if i.closed {
		return 0, ErrClosed
	}

	count := 0
	for {
		b, eof, err := i.peekByte()
		if err != nil {
			return count, err
		}
		if eof || predicate(b) {
			return count, nil
		}
		if _, _, err := i.readByteOrEOF(); err != nil {
			return count, err
		}
		count++
	}
}

func (i *inp) Preview(block func() error) error {
	if i.closed {
		return ErrPreviewAfterClose
	}

	i.skipExhausted()
	if i.cur >= len(i.fifo) {
		ok, err := i.ensureMore()
		if err != nil {
			return err
		}
		if !ok {
			return ErrPreviewEmpty
		}
	}

	cp := checkpoint{cur: i.cur, read: i.fifo[i.cur].read}
	i.previewStack = append(i.previewStack, cp)

	blockErr := block()

	if !i.closed {
		i.previewStack = i.previewStack[:len(i.previewStack)-1]
		// Every entry past the checkpoint - pre-existing unread ones and
		// ones appended by fill during the block alike - starts the
		// preview at read==0 and must replay from there, not just the
		// one entry the checkpoint pins.
		for idx := cp.cur + 1; idx < len(i.fifo); idx++ {
			i.fifo[idx].read = 0
		}
		i.fifo[cp.cur].read = cp.read
		i.cur = cp.cur
		i.maybeEvict()
	}
	return blockErr
}

func (i *inp) ReadAvailableToOutput(o output.Output) (int, error) {
	if i.closed {
		return 0, ErrClosed
	}

	i.skipExhausted()
	if i.cur >= len(i.fifo) {
		ok, err := i.ensureMore()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
	}

	e := i.fifo[i.cur]
	n, err := o.TransferFrom(e.b, e.read, e.write)
	i.fifo[i.cur].read = e.write
	i.cur++
	i.maybeEvict()
	if err != nil {
		i.log.Error("input: transfer flush failed", err)
		return 0, err
	}
	return n, nil
}

func (i *inp) ReadAvailableToBuffer(b buffer.Buffer, start int) (int, error) {
	if i.closed {
		return start, ErrClosed
	}

	count, err := i.fill(b, start, b.Capacity())
	if err != nil {
		return start, err
	}
	return start + count, nil
}

func (i *inp) CopyTo(o output.Output, size int64) (int64, error) {
	if i.closed {
		return 0, ErrClosed
	}

	if size < 0 {
		var total int64
		for {
			n, err := i.ReadAvailableToOutput(o)
			if err != nil {
				return total, err
			}
			if n == 0 {
				return total, nil
			}
			total += int64(n)
		}
	}

	var total int64
	for total < size {
		i.skipExhausted()
		if i.cur >= len(i.fifo) {
			ok, err := i.ensureMore()
			if err != nil {
				return total, err
			}
			if !ok {
				return total, ErrEOFUnderflow
			}
			continue
		}

		e := i.fifo[i.cur]
		remainingWanted := size - total
		avail := int64(e.write - e.read)

		if avail <= remainingWanted {
			n, err := o.TransferFrom(e.b, e.read, e.write)
			i.fifo[i.cur].read = e.write
			i.cur++
			i.maybeEvict()
			if err != nil {
				return total, err
			}
			total += int64(n)
			continue
		}

		n := int(remainingWanted)
		view := buffer.Wrap(buffer.ToSlice(e.b, e.read, e.read+n))
		cnt, err := o.WriteBuffer(view)
		i.fifo[i.cur].read += n
		if err != nil {
			return total, err
		}
		total += int64(cnt)
	}
	return total, nil
}

func (i *inp) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true

	var ferr error
	for idx := range i.fifo {
		if err := i.pool.Recycle(i.fifo[idx].b); err != nil && ferr == nil {
			ferr = err
		}
	}
	i.fifo = nil
	i.cur = 0
	i.previewStack = nil

	if i.closeSource != nil {
		if err := i.closeSource(); err != nil && ferr == nil {
			ferr = err
		}
	}
	return ferr
}
