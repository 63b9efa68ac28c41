package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// backendCallsTotal 导出调用次数（按导出名、后端、结果分类）
	backendCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wasmcrypto",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Total number of backend export calls by export, backend and result",
		},
		[]string{"export", "backend", "result"}, // result: ok, error
	)

	// backendCallDuration 导出调用耗时
	backendCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wasmcrypto",
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Duration of backend export calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs ~ 2.6s
		},
		[]string{"backend"},
	)

	// backendLoadsTotal 装载结果
	backendLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wasmcrypto",
			Subsystem: "backend",
			Name:      "loads_total",
			Help:      "Total number of backend loads by selected backend",
		},
		[]string{"backend"}, // accelerated, fallback
	)
)

func init() {
	prometheus.MustRegister(
		backendCallsTotal,
		backendCallDuration,
		backendLoadsTotal,
	)
}

func recordCall(export, backend string, err error, seconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	backendCallsTotal.WithLabelValues(export, backend, result).Inc()
	backendCallDuration.WithLabelValues(backend).Observe(seconds)
}

func recordLoad(backend string) {
	backendLoadsTotal.WithLabelValues(backend).Inc()
}
