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

import "errors"

var (
	// ErrClosed is returned by any operation on an Input after Close has
	// been called.
	ErrClosed = errors.New("input: closed")

	// ErrEOFUnderflow is returned when an operation asked for a specific
	// number of bytes and the source ran out before satisfying it.
	ErrEOFUnderflow = errors.New("input: EOF before requested bytes were available")

	// ErrPreviewEmpty is returned by Preview when the Input has no
	// buffered bytes and the first fill attempt also returns 0.
	ErrPreviewEmpty = errors.New("input: preview requires at least one available byte")

	// ErrPreviewAfterClose is returned by Preview specifically (rather
	// than the generic ErrClosed) when called after Close, distinguishing
	// preview misuse from ordinary closed-stream reads per the error
	// taxonomy.
	ErrPreviewAfterClose = errors.New("input: preview invoked after close")
)
