package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики обновления токенов. Регистрируются в DefaultRegisterer и
// отдаются сервером через /metrics.
var (
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edm_sync",
		Subsystem: "credentials",
		Name:      "refresh_total",
		Help:      "Token refresh attempts by result.",
	}, []string{"result"})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edm_sync",
		Subsystem: "credentials",
		Name:      "sweep_duration_seconds",
		Help:      "Duration of a full credential sweep.",
		Buckets:   prometheus.DefBuckets,
	})

	sweepEntries = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edm_sync",
		Subsystem: "credentials",
		Name:      "sweep_entries",
		Help:      "Number of credentials processed per sweep.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
)

// Значения метки result метрики refresh_total.
const (
	resultSuccess   = "success"
	resultRejected  = "upstream_rejected"
	resultMalformed = "upstream_malformed"
	resultCorrupted = "corrupted_ciphertext"
)
