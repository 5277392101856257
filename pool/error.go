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
	"errors"
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

// Sentinel errors returned by Pool operations. They are plain errors.New
// values, matched with errors.Is; only the leak error returned by Close
// wraps a CodeError from github.com/nabbar/golib/errors.
var (
	// ErrClosed is returned by Borrow once Close has been called.
	ErrClosed = errors.New("pool: closed")

	// ErrExhausted is returned by Borrow when the pool has reached its
	// configured bound and no recycled Buffer is available.
	ErrExhausted = errors.New("pool: exhausted")

	// ErrForeignBuffer is returned by Recycle for a Buffer this Pool did
	// not produce, or for a Buffer already recycled once.
	ErrForeignBuffer = errors.New("pool: foreign or already recycled buffer")
)

const (
	// codeLeak classifies a pool closed with buffers still outstanding, in
	// the code space reserved for this package, offset past the nabbar-golib/errors pkg range so
	// it never collides with the library's own internal packages.
	codeLeak liberr.CodeError = iota + 9400
)

func init() {
	liberr.RegisterIdFctMessage(codeLeak, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case codeLeak:
		return "pool closed with buffers still outstanding"
	}
	return ""
}

// leakError reports that Close found n Buffers still outstanding (borrowed
// but never recycled). The count is available via LeakedCount.
type leakError struct {
	n int
	e liberr.Error
}

func newLeakError(n int) error {
	return &leakError{n: n, e: codeLeak.Error(nil)}
}

func (l *leakError) Error() string {
	return fmt.Sprintf("%s: %d buffer(s) still outstanding", l.e.Error(), l.n)
}

func (l *leakError) Unwrap() error {
	return l.e
}

// LeakedCount returns the number of outstanding buffers carried by err, and
// whether err actually represents a leak reported by Pool.Close.
func LeakedCount(err error) (int, bool) {
	var l *leakError
	if errors.As(err, &l) {
		return l.n, true
	}
	return 0, false
}
