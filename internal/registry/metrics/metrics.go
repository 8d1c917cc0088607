package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeDenied   = "denied"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	CheckMatch    = "match"
	CheckMismatch = "mismatch"
	CheckMiss     = "miss"
	CheckError    = "error"
)

// Metrics provides observability for the alias registry.
type Metrics struct {
	MintBatches  *prometheus.CounterVec
	TokensMinted prometheus.Counter
	AliasChecks  *prometheus.CounterVec
	MintDuration prometheus.Histogram
	LastTokenID  prometheus.Gauge
}

// New registers the registry metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		MintBatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alias_registry_mint_batches_total",
			Help: "Mint invocations by outcome",
		}, []string{"outcome"}),
		TokensMinted: factory.NewCounter(prometheus.CounterOpts{
			Name: "alias_registry_tokens_minted_total",
			Help: "Receipt tokens issued",
		}),
		AliasChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alias_registry_alias_checks_total",
			Help: "Alias verification reads by outcome",
		}, []string{"outcome"}),
		MintDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "alias_registry_mint_duration_seconds",
			Help:    "Duration of Mint invocations including the store transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LastTokenID: factory.NewGauge(prometheus.GaugeOpts{
			Name: "alias_registry_last_token_id",
			Help: "Most recently issued token id",
		}),
	}
}

// ObserveMint records a finished Mint. tokens and lastTokenID are only
// meaningful on success.
func (m *Metrics) ObserveMint(outcome string, tokens int, lastTokenID uint64, start time.Time) {
	if m == nil {
		return
	}
	m.MintBatches.WithLabelValues(outcome).Inc()
	m.MintDuration.Observe(time.Since(start).Seconds())
	if outcome == OutcomeSuccess {
		m.TokensMinted.Add(float64(tokens))
		m.LastTokenID.Set(float64(lastTokenID))
	}
}

func (m *Metrics) ObserveAliasCheck(outcome string) {
	if m == nil {
		return
	}
	m.AliasChecks.WithLabelValues(outcome).Inc()
}
