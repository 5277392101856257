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

// Package input implements a pull-based reader over pool.Pool buffers. An
// Input lazily fills Buffers from an underlying source through a fill
// callback, queues them in a FIFO, and exposes byte-level and bulk read
// primitives plus a nestable preview that reads ahead and rewinds.
//
// # Design Philosophy
//
// The package follows these core principles:
//
//  1. Lazy filling: nothing is read from the source until a caller asks
//     for it, and never more than one buffer ahead.
//  2. Bounded memory: buffers are borrowed from a pool.Pool and recycled
//     as soon as they are fully consumed, except while a preview keeps
//     them pinned for replay.
//  3. Exception transparency: an error returned by the fill callback is
//     handed back to the caller unchanged, never wrapped or logged away.
//  4. Replay without copying: Preview captures FIFO/read-offset indices,
//     not a copy of the bytes, so rewinding costs O(k) in the number of
//     fifo entries past the checkpoint, regardless of how many bytes were
//     read inside the block.
//
// # Architecture
//
//	┌────────────────────────────────────────────────────────┐
//	│                         Input                           │
//	└───────────────────────────┬──────────────────────────────┘
//	                            │
//	          ┌─────────────────┼──────────────────┐
//	          │                 │                   │
//	     ┌────▼────┐      ┌─────▼─────┐      ┌──────▼──────┐
//	     │  fifo    │      │    cur    │      │ previewStack │
//	     │[]entry   │      │  index    │      │[]checkpoint  │
//	     └────┬─────┘      └───────────┘      └──────────────┘
//	          │
//	     entry{ b buffer.Buffer, read, write int }
//
// Each entry wraps one pool-borrowed Buffer plus how much of it has been
// read and how much the fill callback wrote. cur points at the entry
// currently being read; entries before cur are fully consumed and, absent
// an active preview, are recycled and dropped from the front of fifo by
// maybeEvict. A checkpoint records (cur, read) at the moment Preview was
// entered, letting Preview restore both on return.
//
// # Preview and Replay
//
// Preview(block) pins the current read position, runs block (which may
// call any other Input method, including a nested Preview), and on return
// rewinds cur and every fifo entry past the checkpoint back to its
// pre-block read offset - whether that entry existed at checkpoint time
// or was appended by a fill during the block - so the next read after
// Preview returns sees the same bytes block saw. Eviction of consumed
// entries is deferred for the whole time any preview is active, since an
// entry recycled mid-preview would make replay read garbage.
//
// # Advantages
//
//   - Bounded, pool-backed memory regardless of source size.
//   - Cheap preview/rewind: no byte copying, only index bookkeeping.
//   - Nestable previews: an inner Preview's checkpoint restores first,
//     leaving the outer preview's own rewind point untouched.
//   - Zero-copy handoff to Output via ReadAvailableToOutput/CopyTo, which
//     transfer a held Buffer directly rather than copying byte-by-byte.
//
// # Disadvantages and Limitations
//
//   - Not safe for concurrent use; a single Input is driven by one
//     goroutine at a time.
//   - No random access or seeking: bytes already evicted past an active
//     preview's checkpoint are gone for good.
//   - A long-lived preview prevents eviction of every entry it spans,
//     so a source that never closes its preview block can grow fifo
//     without bound.
//
// # Performance Characteristics
//
//   - Amortized O(1) per byte read; a new buffer is borrowed only when
//     the current one is exhausted.
//   - Preview/rewind cost is O(k) in the number of fifo entries touched
//     during the block, not in bytes read.
//   - CopyTo and ReadAvailableToOutput move whole buffers to an Output in
//     one call rather than copying through an intermediate slice.
//
// # Typical Use Cases
//
// Peeking at a header before deciding how to handle a stream:
//
//	err := in.Preview(func() error {
//	    header, perr := in.ReadByteArray(4)
//	    if perr != nil {
//	        return perr
//	    }
//	    detected = parseMagic(header)
//	    return nil
//	})
//	// in is positioned right back before the header on return.
//
// Streaming a bounded number of bytes straight to an Output without an
// intermediate allocation:
//
//	n, err := in.CopyTo(out, wantSize)
//
// # Error Handling
//
// ErrClosed is returned by any method after Close. ErrEOFUnderflow is
// returned when an operation (ReadByteArray, Discard, CopyTo with an
// explicit size) demands more bytes than the source can ever supply.
// ErrPreviewEmpty is returned by Preview when the Input has no bytes
// available at all - EOF right at the call, so block never runs.
// ErrPreviewAfterClose is returned instead of ErrClosed specifically from
// Preview, so callers can distinguish "closed during a preview" from an
// ordinary closed-stream error. Errors from the fill callback itself are
// never wrapped: every method that triggers a fill returns that exact
// error value, checkable with errors.Is or pointer identity.
//
// # Thread Safety
//
// Input is NOT thread-safe. Concurrent calls from multiple goroutines
// require external synchronization; the pool.Pool an Input borrows from
// is safe for concurrent use, but the Input itself is not.
package input
