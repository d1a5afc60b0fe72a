package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"lrucache/internal/cache"
)

const metricsNamespace = "lrucache"

// newStoreCollectors reports the store size and capacity, read at scrape time
func newStoreCollectors(store cache.Store[string]) []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "entries",
			Help:      "Number of entries currently cached",
		}, func() float64 {
			return float64(store.Size())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "capacity",
			Help:      "Maximum number of cached entries",
		}, func() float64 {
			return float64(store.Capacity())
		}),
	}
}
