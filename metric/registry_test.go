package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streambuf/errors"
)

func newTestCounter(name string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "streambuf",
		Subsystem: "test",
		Name:      name,
		Help:      "test counter",
	})
}

func TestRegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()
	require.NotNil(t, registry.PrometheusRegistry())

	err := registry.RegisterCounter("buf-a", "writes", newTestCounter("writes_total"))
	require.NoError(t, err)
}

func TestRegisterCounterDuplicateKey(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, registry.RegisterCounter("buf-a", "writes", newTestCounter("writes_total")))

	err := registry.RegisterCounter("buf-a", "writes", newTestCounter("writes_other_total"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestRegisterCounterPrometheusConflict(t *testing.T) {
	registry := NewMetricsRegistry()

	// Same metric identity under different registry keys still conflicts
	// inside Prometheus itself.
	require.NoError(t, registry.RegisterCounter("buf-a", "writes", newTestCounter("writes_total")))

	err := registry.RegisterCounter("buf-b", "writes", newTestCounter("writes_total"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestRegisterGauge(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "streambuf",
		Subsystem: "test",
		Name:      "len",
		Help:      "test gauge",
	})
	require.NoError(t, registry.RegisterGauge("buf-a", "len", gauge))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, registry.RegisterCounter("buf-a", "writes", newTestCounter("writes_total")))
	assert.True(t, registry.Unregister("buf-a", "writes"))
	assert.False(t, registry.Unregister("buf-a", "writes"))

	// Once unregistered, the slot is free again.
	require.NoError(t, registry.RegisterCounter("buf-a", "writes", newTestCounter("writes_total")))
}
