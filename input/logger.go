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
	golog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"
)

// Logger receives diagnostic events from an Input: borrow failures and
// failed transfers to an Output. Fill errors are returned, not logged. The
// default is a no-op.
type Logger interface {
	Error(msg string, err ...error)
}

type noopLogger struct{}

func (noopLogger) Error(string, ...error) {}

// FromGolibLogger adapts a github.com/nabbar/golib/logger.Logger into an
// input.Logger, mirroring pool.FromGolibLogger.
func FromGolibLogger(l golog.Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return &golibLogger{l: l}
}

type golibLogger struct {
	l golog.Logger
}

func (g *golibLogger) Error(msg string, err ...error) {
	g.l.Entry(loglvl.ErrorLevel, msg).ErrorAdd(true, err...).Log()
}
