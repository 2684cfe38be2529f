package buffer

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streambuf/metric"
)

func TestCircularMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	buf, err := NewCircular(8, WithMetrics[byte](registry, "ingest"))
	require.NoError(t, err)
	require.NotNil(t, buf.metrics)

	buf.Write([]byte("abcdef"))
	buf.Read(make([]byte, 4))
	buf.Write(make([]byte, 10)) // short

	assert.Equal(t, float64(6+6), testutil.ToFloat64(buf.metrics.written))
	assert.Equal(t, float64(4), testutil.ToFloat64(buf.metrics.read))
	assert.Equal(t, float64(4), testutil.ToFloat64(buf.metrics.discarded))
	assert.Equal(t, float64(1), testutil.ToFloat64(buf.metrics.shortWrites))
	assert.Equal(t, float64(8), testutil.ToFloat64(buf.metrics.length))
	assert.Equal(t, float64(1), testutil.ToFloat64(buf.metrics.utilization))
}

func TestDynamicMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	buf, err := NewDynamic(WithExtentSize[byte](4), WithMetrics[byte](registry, "staging"))
	require.NoError(t, err)
	require.NotNil(t, buf.metrics)

	buf.Write([]byte("0123456789"))
	buf.Read(make([]byte, 8))

	assert.Equal(t, float64(10), testutil.ToFloat64(buf.metrics.written))
	assert.Equal(t, float64(8), testutil.ToFloat64(buf.metrics.read))
	assert.Greater(t, testutil.ToFloat64(buf.metrics.grows), 0.0)
	assert.Greater(t, testutil.ToFloat64(buf.metrics.evictions), 0.0)
	assert.Equal(t, float64(2), testutil.ToFloat64(buf.metrics.length))
}

func TestMetricsExposedByRegistry(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	buf, err := NewCircular(8, WithMetrics[byte](registry, "conn"))
	require.NoError(t, err)
	buf.Write([]byte("ab"))

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["streambuf_buffer_written_total"])
	assert.True(t, names["streambuf_buffer_len"])
}

func TestMetricsDuplicatePrefix(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	_, err := NewCircular(8, WithMetrics[byte](registry, "dup"))
	require.NoError(t, err)

	// Same prefix on the same registry collides.
	_, err = NewCircular(8, WithMetrics[byte](registry, "dup"))
	assert.Error(t, err)

	// A different prefix is fine.
	_, err = NewDynamic(WithMetrics[byte](registry, "other"))
	assert.NoError(t, err)
}

func TestMetricsDisabledByDefault(t *testing.T) {
	buf, err := NewCircular[byte](8)
	require.NoError(t, err)
	assert.Nil(t, buf.metrics)

	// Nil registry means metrics stay off.
	buf, err = NewCircular(8, WithMetrics[byte](nil, "x"))
	require.NoError(t, err)
	assert.Nil(t, buf.metrics)
}
