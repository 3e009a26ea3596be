package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Счётчик выпущенных токенов по виду
	TokensIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of issued tokens by kind",
		},
		[]string{"type"},
	)

	// Счётчик проверок токенов
	TokenValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Total number of token validations by kind and result",
		},
		[]string{"type", "result"},
	)
)

func init() {
	prometheus.MustRegister(TokensIssued, TokenValidations)
}
