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

package buffer

import "fmt"

// buf is the sole implementation of Buffer. It is always used behind a
// pointer so that interface equality gives identity equality.
type buf struct {
	data []byte
}

func (b *buf) Capacity() int {
	return len(b.data)
}

func (b *buf) Get(i int) byte {
	if i < 0 || i >= len(b.data) {
		panic(fmt.Sprintf("buffer: Get index %d out of range [0, %d)", i, len(b.data)))
	}
	return b.data[i]
}

func (b *buf) Set(i int, v byte) {
	if i < 0 || i >= len(b.data) {
		panic(fmt.Sprintf("buffer: Set index %d out of range [0, %d)", i, len(b.data)))
	}
	b.data[i] = v
}

func (b *buf) CopyTo(dest Buffer, srcStart, srcEnd, destStart int) {
	if srcStart < 0 || srcEnd < srcStart || srcEnd > len(b.data) {
		panic(fmt.Sprintf("buffer: CopyTo source range [%d, %d) out of range [0, %d)", srcStart, srcEnd, len(b.data)))
	}

	d, ok := dest.(*buf)
	if !ok {
		panic("buffer: CopyTo destination is not a *buf instance")
	}

	n := srcEnd - srcStart
	if destStart < 0 || destStart+n > len(d.data) {
		panic(fmt.Sprintf("buffer: CopyTo destination range [%d, %d) out of range [0, %d)", destStart, destStart+n, len(d.data)))
	}

	if d == b {
		panic("buffer: CopyTo does not support copying a buffer onto itself")
	}

	copy(d.data[destStart:destStart+n], b.data[srcStart:srcEnd])
}
