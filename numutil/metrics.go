// Copyright 2020 Aleksandr Demakin. All rights reserved.

package numutil

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zeebo/errs"
)

var (
	// ErrTooMuchMemory is raised (as a panic value) when a power of the radix would be too large to compute.
	ErrTooMuchMemory = errs.Class("result requires too much memory")

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "radixmath",
		Subsystem: "power_cache",
		Name:      "lookups_total",
		Help:      "Number of power cache lookups by result.",
	}, []string{"result"})

	computations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "radixmath",
		Subsystem: "power_cache",
		Name:      "computations_total",
		Help:      "Number of powers computed and stored in the cache.",
	})
)

// RegisterMetrics registers the power cache metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{cacheLookups, computations} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
