// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsRequest holds Prometheus metrics for request execution.
type metricsRequest struct {
	once sync.Once

	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	rewrites *prometheus.CounterVec
	skipped  prometheus.Counter

	rpcDuration    prometheus.Histogram
	decodeDuration prometheus.Histogram
}

var reqMetrics metricsRequest

func (m *metricsRequest) init() {
	m.once.Do(func() {
		m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "tgbridge_requests_total", Help: "Requests sent to the engine, by result shape"}, []string{"shape"})
		m.failures = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "tgbridge_request_errors_total", Help: "Failed requests, by result shape and error kind"}, []string{"shape", "kind"})
		m.rewrites = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "tgbridge_rewrite_total", Help: "Statements rewritten, by statement kind"}, []string{"kind"})
		m.skipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "tgbridge_empty_statements_total", Help: "Statements with empty text answered without an engine call"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.rpcDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "tgbridge_rpc_seconds", Help: "Engine call duration", Buckets: buckets})
		m.decodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "tgbridge_decode_seconds", Help: "Result decoding duration", Buckets: buckets})

		prometheus.MustRegister(
			m.requests, m.failures, m.rewrites, m.skipped,
			m.rpcDuration, m.decodeDuration,
		)
	})
}

// record helpers used by Request
func recordRequest(shape string) { reqMetrics.init(); reqMetrics.requests.WithLabelValues(shape).Inc() }
func recordFailure(shape, kind string) {
	reqMetrics.init()
	reqMetrics.failures.WithLabelValues(shape, kind).Inc()
}
func recordRewrite(kind string)  { reqMetrics.init(); reqMetrics.rewrites.WithLabelValues(kind).Inc() }
func recordSkipped()             { reqMetrics.init(); reqMetrics.skipped.Inc() }
func observeRPC(d time.Duration) { reqMetrics.init(); reqMetrics.rpcDuration.Observe(d.Seconds()) }
func observeDecode(d time.Duration) {
	reqMetrics.init()
	reqMetrics.decodeDuration.Observe(d.Seconds())
}
