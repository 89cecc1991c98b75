package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates a fresh registry with the standard go/process
// collectors plus any additional ones (e.g. the pgx pool collector).
func SetupPrometheus(additional ...prometheus.Collector) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, collector := range additional {
		registry.MustRegister(collector)
	}
	return registry
}
