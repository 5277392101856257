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

package output_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsiz "github.com/nabbar/golib/size"

	"github.com/sabouaram/pbuffer/buffer"
	"github.com/sabouaram/pbuffer/output"
	"github.com/sabouaram/pbuffer/pool"
)

var _ = Describe("Output", func() {
	Context("writeByte", func() {
		It("accumulates bytes and flushes exactly once when full", func() {
			p := pool.New(4, libsiz.Size(4))
			var flushed []byte
			var calls int

			o := output.New(p, 4, func(b buffer.Buffer, start, end int) error {
				calls++
				for i := start; i < end; i++ {
					flushed = append(flushed, b.Get(i))
				}
				return nil
			}, nil)

			for _, b := range []byte{1, 2, 3, 4} {
				Expect(o.WriteByte(b)).To(Succeed())
			}

			Expect(calls).To(Equal(1))
			Expect(flushed).To(Equal([]byte{1, 2, 3, 4}))
		})

		It("fails after Close", func() {
			p := pool.New(4, libsiz.Size(2))
			o := output.New(p, 4, func(buffer.Buffer, int, int) error { return nil }, nil)
			Expect(o.Close()).To(Succeed())
			Expect(o.WriteByte(1)).To(MatchError(output.ErrClosed))
		})
	})

	Context("writeBuffer", func() {
		It("delivers a large buffer with exactly one flush call, after flushing pending bytes", func() {
			p := pool.New(4, libsiz.Size(4))
			var flushes [][]byte

			o := output.New(p, 4, func(b buffer.Buffer, start, end int) error {
				var chunk []byte
				for i := start; i < end; i++ {
					chunk = append(chunk, b.Get(i))
				}
				flushes = append(flushes, chunk)
				return nil
			}, nil)

			Expect(o.WriteByte(42)).To(Succeed())

			large := make([]byte, 4097)
			n, err := o.WriteBuffer(buffer.Wrap(large))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(4097))

			Expect(flushes).To(HaveLen(2))
			Expect(flushes[0]).To(Equal([]byte{42}))
			Expect(flushes[1]).To(HaveLen(4097))
		})

		It("packs a small buffer into the current Buffer instead of bypassing it", func() {
			p := pool.New(8, libsiz.Size(2))
			var calls int

			o := output.New(p, 8, func(buffer.Buffer, int, int) error {
				calls++
				return nil
			}, nil)

			n, err := o.WriteBuffer(buffer.Wrap([]byte{1, 2, 3}))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(calls).To(Equal(0))

			Expect(o.Flush()).To(Succeed())
			Expect(calls).To(Equal(1))
		})
	})

	Context("TransferFrom", func() {
		It("delivers the exact buffer instance to flush without touching the Output's own pool", func() {
			inputSidePool := pool.New(4, libsiz.Size(1))
			outputSidePool := pool.New(4, libsiz.Size(1))

			seed := buffer.New(4)
			seed.Set(0, 9)
			seed.Set(1, 8)

			var seenIdentity bool
			o := output.New(outputSidePool, 4, func(b buffer.Buffer, start, end int) error {
				seenIdentity = b == seed
				return nil
			}, nil)

			n, err := o.TransferFrom(seed, 0, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
			Expect(seenIdentity).To(BeTrue())

			_, outErr := outputSidePool.Borrow()
			Expect(outErr).NotTo(HaveOccurred())
			_, inErr := inputSidePool.Borrow()
			Expect(inErr).NotTo(HaveOccurred())
		})
	})

	Context("sink failure transparency", func() {
		It("propagates the exact error instance from flush", func() {
			p := pool.New(2, libsiz.Size(1))
			boom := errors.New("sink exploded")

			o := output.New(p, 2, func(buffer.Buffer, int, int) error {
				return boom
			}, nil)

			Expect(o.WriteByte(1)).To(Succeed())
			err := o.WriteByte(2)
			Expect(err).To(BeIdenticalTo(boom))
		})
	})

	Context("close", func() {
		It("flushes pending bytes then closes the sink, and is idempotent", func() {
			p := pool.New(4, libsiz.Size(2))
			var flushed, sinkClosed bool

			o := output.New(p, 4, func(b buffer.Buffer, start, end int) error {
				flushed = true
				return nil
			}, func() error {
				sinkClosed = true
				return nil
			})

			Expect(o.WriteByte(1)).To(Succeed())
			Expect(o.Close()).To(Succeed())
			Expect(flushed).To(BeTrue())
			Expect(sinkClosed).To(BeTrue())

			Expect(o.Close()).To(Succeed())
		})
	})
})
