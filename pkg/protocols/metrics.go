package protocols

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "netproto"
	metricsSubsystem = "directory"
)

var lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: metricsNamespace,
	Subsystem: metricsSubsystem,
	Name:      "lookups_total",
	Help:      "Number of protocol lookups, by backend, operation and result",
},
	[]string{"backend", "op", "result"},
)

var lookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: metricsNamespace,
	Subsystem: metricsSubsystem,
	Name:      "lookup_duration_seconds",
	Help:      "Duration of protocol lookups",
	// lookups are local file / C library reads, so the buckets are small
	Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
},
	[]string{"backend", "op"},
)

var enumerations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: metricsNamespace,
	Subsystem: metricsSubsystem,
	Name:      "enumerations_total",
	Help:      "Number of protocol database walks",
},
	[]string{"backend"},
)

var recordsEnumerated = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: metricsNamespace,
	Subsystem: metricsSubsystem,
	Name:      "records_enumerated_total",
	Help:      "Number of records yielded by protocol database walks",
},
	[]string{"backend"},
)

// Collectors returns the metrics of instrumented directories. They are not registered
// anywhere by default
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		lookups,
		lookupDuration,
		enumerations,
		recordsEnumerated,
	}
}
