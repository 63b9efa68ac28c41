package signature

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

var (
	// verifyTotal 验签次数（按路径、方案、结果分类）
	verifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wasmcrypto",
			Subsystem: "signature",
			Name:      "verify_total",
			Help:      "Total number of signature verifications by route, scheme and validity",
		},
		[]string{"route", "crypto", "valid"}, // route: detect, multisig
	)
)

func init() {
	prometheus.MustRegister(verifyTotal)
}

func recordVerify(route string, result types.VerifyResult) {
	valid := "false"
	if result.IsValid {
		valid = "true"
	}
	verifyTotal.WithLabelValues(route, result.Crypto.String(), valid).Inc()
}
