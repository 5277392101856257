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

// Buffer is a fixed-capacity region of bytes with indexed load/store and
// range copy. Capacity never changes after construction.
//
// Buffer identity matters: compare Buffer values with ==, not by content.
// A Pool never returns two live Buffers that are ==.
//
// Out-of-range Get/Set/CopyTo panic - these represent a broken invariant in
// the caller (input/output/pool never produce one), not a recoverable
// runtime failure.
type Buffer interface {
	// Capacity returns the fixed size of the buffer, in bytes.
	Capacity() int

	// Get returns the byte at index i. Panics if i is out of [0, Capacity()).
	Get(i int) byte

	// Set stores b at index i. Panics if i is out of [0, Capacity()).
	Set(i int, b byte)

	// CopyTo copies the range [srcStart, srcEnd) of the receiver into dest
	// starting at destStart. Ranges must lie within the respective
	// capacities; copying a Buffer onto itself is not supported, whether
	// or not the regions overlap. Panics on violation.
	CopyTo(dest Buffer, srcStart, srcEnd, destStart int)
}

// Empty is the sentinel zero-capacity Buffer used for uninitialized
// references. No operation other than identity comparison (== Empty) is
// valid on it.
var Empty Buffer = &buf{data: nil}

// New allocates a new Buffer of the given capacity. Treat the contents as
// undefined until written: callers must not rely on the zero-initialization
// Go happens to give the backing array.
func New(capacity int) Buffer {
	if capacity <= 0 {
		return &buf{data: nil}
	}
	return &buf{data: make([]byte, capacity)}
}

// Wrap builds a Buffer over a caller-owned byte slice, for callers that hold
// bytes outside of any Pool (e.g. splitting off a prefix during a sized
// copyTo). The returned Buffer is never identity-equal to any Pool-produced
// Buffer, including one built from the same bytes.
func Wrap(data []byte) Buffer {
	return &buf{data: data}
}

// ToSlice copies the range [start, end) of b into a freshly allocated byte
// slice, breaking identity with b. Used where a copy, not a zero-copy
// handoff, is required.
func ToSlice(b Buffer, start, end int) []byte {
	out := make([]byte, end-start)
	for i := range out {
		out[i] = b.Get(start + i)
	}
	return out
}
