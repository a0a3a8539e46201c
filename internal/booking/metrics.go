package booking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamehost_reservations_created_total",
		Help: "Reservations successfully created.",
	})

	metricConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehost_admission_conflicts_total",
		Help: "Creation or amendment attempts rejected because a table or game copy was unavailable.",
	}, []string{"resource"})

	metricLookupThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamehost_lookups_throttled_total",
		Help: "Self-service lookups rejected by the attempt budget.",
	})
)
