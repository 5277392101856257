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

package input_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsiz "github.com/nabbar/golib/size"

	"github.com/sabouaram/pbuffer/buffer"
	"github.com/sabouaram/pbuffer/input"
	"github.com/sabouaram/pbuffer/output"
	"github.com/sabouaram/pbuffer/pool"
)

func sequenceOf(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return data
}

func zerosOf(n int) []byte {
	return make([]byte, n)
}

func sourceFill(data []byte) input.FillFunc {
	pos := 0
	return func(b buffer.Buffer, start, end int) (int, error) {
		n := 0
		for start+n < end && pos < len(data) {
			b.Set(start+n, data[pos])
			pos++
			n++
		}
		return n, nil
	}
}

func capturingOutput(p pool.Pool, bufCap int) (output.Output, *[]byte) {
	out := make([]byte, 0)
	o := output.New(p, bufCap, func(b buffer.Buffer, start, end int) error {
		for i := start; i < end; i++ {
			out = append(out, b.Get(i))
		}
		return nil
	}, nil)
	return o, &out
}

var _ = Describe("Input", func() {
	Context("round-trip", func() {
		It("returns the exact 4097-byte sequence and reports EOF", func() {
			data := sequenceOf(4097)
			p := pool.New(64, libsiz.Size(0))
			in := input.New(p, 64, sourceFill(data), nil)

			got, err := in.ReadByteArray(-1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(data))

			eof, err := in.EOF()
			Expect(err).NotTo(HaveOccurred())
			Expect(eof).To(BeTrue())
		})
	})

	Context("copyTo with size", func() {
		It("transfers exactly 4096 bytes, leaving the 4097th readable", func() {
			data := sequenceOf(4097)
			srcPool := pool.New(64, libsiz.Size(0))
			dstPool := pool.New(64, libsiz.Size(0))
			in := input.New(srcPool, 64, sourceFill(data), nil)
			o, captured := capturingOutput(dstPool, 64)

			n, err := in.CopyTo(o, 4096)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(4096)))
			Expect(*captured).To(Equal(data[:4096]))

			b, err := in.ReadByte()
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(Equal(byte(4096 % 256)))

			eof, err := in.EOF()
			Expect(err).NotTo(HaveOccurred())
			Expect(eof).To(BeTrue())
		})
	})

	Context("preview then replay", func() {
		It("replays all 6186 bytes after the preview returns", func() {
			data := zerosOf(6186)
			srcPool := pool.New(2048, libsiz.Size(0))
			dstPool := pool.New(2048, libsiz.Size(0))
			in := input.New(srcPool, 2048, sourceFill(data), nil)
			o, captured := capturingOutput(dstPool, 2048)

			var insideEOF bool
			var transferred int64
			err := in.Preview(func() error {
				n, cerr := in.CopyTo(o, -1)
				if cerr != nil {
					return cerr
				}
				transferred = n
				eof, eerr := in.EOF()
				if eerr != nil {
					return eerr
				}
				insideEOF = eof
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(transferred).To(Equal(int64(6186)))
			Expect(insideEOF).To(BeTrue())
			Expect(*captured).To(HaveLen(6186))

			eof, err := in.EOF()
			Expect(err).NotTo(HaveOccurred())
			Expect(eof).To(BeFalse())

			replayed, err := in.ReadByteArray(-1)
			Expect(err).NotTo(HaveOccurred())
			Expect(replayed).To(Equal(data))
		})
	})

	Context("preview on empty input", func() {
		It("fails distinctly from returning an empty result", func() {
			p := pool.New(16, libsiz.Size(0))
			in := input.New(p, 16, sourceFill(nil), nil)

			ran := false
			err := in.Preview(func() error {
				ran = true
				return nil
			})
			Expect(err).To(MatchError(input.ErrPreviewEmpty))
			Expect(ran).To(BeFalse())
		})
	})

	Context("close inside preview", func() {
		It("is terminal: reads fail inside and outside the preview", func() {
			data := zerosOf(6186)
			p := pool.New(2048, libsiz.Size(0))
			in := input.New(p, 2048, sourceFill(data), nil)
			_, captured := capturingOutput(p, 2048)
			_ = captured

			outputPool := pool.New(2048, libsiz.Size(0))
			o2, _ := capturingOutput(outputPool, 2048)

			err := in.Preview(func() error {
				Expect(in.Close()).To(Succeed())

				_, rerr := in.ReadByte()
				Expect(rerr).To(HaveOccurred())

				n, cerr := in.CopyTo(o2, -1)
				Expect(n).To(Equal(int64(0)))
				Expect(cerr).To(HaveOccurred())

				nerr := in.Preview(func() error { return nil })
				Expect(nerr).To(Equal(input.ErrPreviewAfterClose))

				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			_, rerr := in.ReadByte()
			Expect(rerr).To(HaveOccurred())

			n, cerr := in.CopyTo(o2, -1)
			Expect(n).To(Equal(int64(0)))
			Expect(cerr).To(HaveOccurred())
		})
	})

	Context("exception transparency", func() {
		It("propagates the identical fill error from every read operation, then closes cleanly", func() {
			boom := errors.New("x")
			p := pool.New(16, libsiz.Size(0))
			fill := func(b buffer.Buffer, start, end int) (int, error) {
				return 0, boom
			}
			dstPool := pool.New(16, libsiz.Size(0))

			newIn := func() input.Input { return input.New(p, 16, fill, nil) }
			o, _ := capturingOutput(dstPool, 16)

			in := newIn()
			_, err := in.ReadByte()
			Expect(err).To(BeIdenticalTo(boom))

			in = newIn()
			err = in.Preview(func() error { return nil })
			Expect(err).To(BeIdenticalTo(boom))

			in = newIn()
			_, err = in.Prefetch(1)
			Expect(err).To(BeIdenticalTo(boom))

			in = newIn()
			err = in.Discard(1)
			Expect(err).To(BeIdenticalTo(boom))

			in = newIn()
			_, err = in.EOF()
			Expect(err).To(BeIdenticalTo(boom))

			in = newIn()
			_, err = in.ReadAvailableToOutput(o)
			Expect(err).To(BeIdenticalTo(boom))

			in = newIn()
			_, err = in.ReadAvailableToBuffer(buffer.New(4), 0)
			Expect(err).To(BeIdenticalTo(boom))

			Expect(in.Close()).NotTo(HaveOccurred())
		})
	})

	Context("readUntil", func() {
		It("stops before the first byte matching the predicate, without consuming it", func() {
			p := pool.New(16, libsiz.Size(0))
			in := input.New(p, 16, sourceFill([]byte{'a', 'b'}), nil)

			n, err := in.ReadUntil(func(b byte) bool { return b != 'a' })
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))

			b, err := in.ReadByte()
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(Equal(byte('b')))
		})
	})

	Context("readAvailableTo caller buffer", func() {
		It("fills from the given offset and returns the new write index", func() {
			p := pool.New(1024, libsiz.Size(0))
			var seenStart, seenEnd int
			in := input.New(p, 1024, func(b buffer.Buffer, start, end int) (int, error) {
				seenStart, seenEnd = start, end
				return end - start, nil
			}, nil)

			caller := buffer.New(1024)
			newIdx, err := in.ReadAvailableToBuffer(caller, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(seenStart).To(Equal(1))
			Expect(seenEnd).To(Equal(1024))
			Expect(newIdx).To(Equal(1024))
		})
	})

	Context("discard semantics", func() {
		It("fails with EOF underflow rather than silently discarding fewer bytes", func() {
			p := pool.New(8, libsiz.Size(0))
			in := input.New(p, 8, sourceFill([]byte{1, 2, 3}), nil)

			err := in.Discard(10)
			Expect(err).To(MatchError(input.ErrEOFUnderflow))
		})
	})

	Context("prefetch boundary", func() {
		It("succeeds for exactly the remaining bytes", func() {
			p := pool.New(8, libsiz.Size(0))
			in := input.New(p, 8, sourceFill([]byte{1, 2, 3, 4, 5}), nil)

			ok, err := in.Prefetch(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("fails once one more byte than available is requested", func() {
			p := pool.New(8, libsiz.Size(0))
			in := input.New(p, 8, sourceFill([]byte{1, 2, 3, 4, 5}), nil)

			ok, err := in.Prefetch(6)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Context("cross-pool transfer bridge", func() {
		It("recycles the transferred buffer to the Input's own pool, never the Output's", func() {
			srcPool := pool.New(4, libsiz.Size(1))
			dstPool := pool.New(4, libsiz.Size(1))

			in := input.New(srcPool, 4, sourceFill([]byte{1, 2, 3, 4}), nil)
			o, _ := capturingOutput(dstPool, 4)

			n, err := in.ReadAvailableToOutput(o)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(4))

			Expect(srcPool.Close()).To(Succeed())
			Expect(dstPool.Close()).To(Succeed())
		})
	})

	Context("close", func() {
		It("recycles all held buffers and closes the source", func() {
			p := pool.New(4, libsiz.Size(1))
			var sourceClosed bool
			in := input.New(p, 4, sourceFill([]byte{1, 2, 3}), func() error {
				sourceClosed = true
				return nil
			})

			_, err := in.ReadByte()
			Expect(err).NotTo(HaveOccurred())

			Expect(in.Close()).To(Succeed())
			Expect(sourceClosed).To(BeTrue())
			Expect(p.Close()).To(Succeed())
		})
	})
})
