package ticker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchwire_ticker_generations_total",
		Help: "Ticker entries generated, by provider and event taxonomy.",
	}, []string{"provider", "taxonomy"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchwire_ticker_generation_failures_total",
		Help: "Failed generation attempts, by provider and event taxonomy.",
	}, []string{"provider", "taxonomy"})

	idempotentHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchwire_ticker_idempotent_hits_total",
		Help: "Generation requests answered from an existing entry.",
	})
)
