// Package metric provides a Prometheus-based metrics registry for streambuf
// observability.
//
// The package offers a thin registry that tracks which metrics a buffer has
// registered so they can be unregistered cleanly when the buffer goes away,
// and so duplicate registrations are reported as classified errors instead of
// panics from the underlying Prometheus registry.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//
//	buf, err := buffer.NewCircular[byte](4096,
//	    buffer.WithMetrics[byte](registry, "udp-input"),
//	)
//
//	// Expose the underlying registry however the application prefers:
//	http.Handle("/metrics", promhttp.HandlerFor(
//	    registry.PrometheusRegistry(), promhttp.HandlerOpts{}))
//
// The registry also registers Go runtime and process collectors so any
// application exposing it gets baseline runtime visibility for free.
package metric
