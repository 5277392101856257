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

	"github.com/sabouaram/pbuffer/buffer"
)

// NewSingleShot returns a Pool that hands out exactly one pre-constructed
// Buffer exactly once, and verifies on Recycle that the returned instance is
// identity-equal to the one it produced. Intended for tests that need to
// assert zero-copy identity without the nondeterminism of a general Pool.
func NewSingleShot(b buffer.Buffer) Pool {
	return &singleShot{b: b}
}

type singleShot struct {
	mu       sync.Mutex
	b        buffer.Buffer
	borrowed bool
	returned bool
	closed   bool
}

func (s *singleShot) Borrow() (buffer.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.borrowed {
		return nil, ErrExhausted
	}
	s.borrowed = true
	return s.b, nil
}

func (s *singleShot) Recycle(b buffer.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.borrowed || s.returned || b != s.b {
		return ErrForeignBuffer
	}
	s.returned = true
	return nil
}

func (s *singleShot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.borrowed && !s.returned {
		return newLeakError(1)
	}
	return nil
}

func (s *singleShot) SetLogger(Logger) {}

func (s *singleShot) SetMetrics(Metrics) {}
