package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	opDurationsHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "op_durations_histogram_seconds",
		Help:    "Reader operations latency distributions.",
		Buckets: prometheus.ExponentialBuckets(0.001, 1.5, 25),
	}, []string{"op"})

	readBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "read_bytes",
		Help: "Bytes delivered to read callbacks.",
	})

	validationOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "validation_outcomes",
		Help: "Metadata validation outcomes per reader.",
	}, []string{"outcome"})
)

func InitMetricRegistry(backend string, bucket string) (*prometheus.Registry, prometheus.Registerer) {
	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWithPrefix(
		"provfs_",
		prometheus.WrapRegistererWith(prometheus.Labels{"backend": backend, "bucket": bucket}, registry))

	registerer.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registerer.MustRegister(collectors.NewGoCollector())
	return registry, registerer
}

func RegistMetrics(registerer prometheus.Registerer) {
	if registerer == nil {
		return
	}
	registerer.MustRegister(opDurationsHistogram)
	registerer.MustRegister(readBytes)
	registerer.MustRegister(validationOutcomes)
}
