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

import "github.com/prometheus/client_golang/prometheus"

// Metrics receives Pool lifecycle counters. The default is a no-op; attach a
// Prometheus-backed implementation with NewPrometheusMetrics to expose an
// outstanding-buffers gauge and borrow/leak counters from a service
// embedding this package.
type Metrics interface {
	ObserveBorrow(outstanding int)
	ObserveRecycle(outstanding int)
	ObserveLeak(count int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveBorrow(int)  {}
func (noopMetrics) ObserveRecycle(int) {}
func (noopMetrics) ObserveLeak(int)    {}

// PrometheusMetrics is a Metrics implementation backed by three Prometheus
// collectors, registered against the given registerer.
type PrometheusMetrics struct {
	Outstanding prometheus.Gauge
	Borrows     prometheus.Counter
	Leaks       prometheus.Counter
}

// NewPrometheusMetrics builds and registers a PrometheusMetrics under the
// given namespace/subsystem (e.g. "myservice", "buffer_pool").
func NewPrometheusMetrics(reg prometheus.Registerer, namespace, subsystem string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		Outstanding: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "buffers_outstanding",
			Help:      "Number of buffers currently borrowed from the pool.",
		}),
		Borrows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "borrows_total",
			Help:      "Total number of successful Borrow calls.",
		}),
		Leaks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "leaks_total",
			Help:      "Total number of buffers reported outstanding at Close.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Outstanding, m.Borrows, m.Leaks)
	}

	return m
}

func (m *PrometheusMetrics) ObserveBorrow(outstanding int) {
	m.Borrows.Inc()
	m.Outstanding.Set(float64(outstanding))
}

func (m *PrometheusMetrics) ObserveRecycle(outstanding int) {
	m.Outstanding.Set(float64(outstanding))
}

func (m *PrometheusMetrics) ObserveLeak(count int) {
	m.Leaks.Add(float64(count))
}
