package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryRegistersEveryMetric(t *testing.T) {
	r := NewRegistry()
	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"mef_init_files_loaded_total",
		"mef_init_elements_loaded_total",
		"mef_init_stage_duration_seconds",
		"mef_init_validation_failures_total",
		"mef_init_top_events_total",
	} {
		assert.True(t, names[want], "expected metric %s to be registered", want)
	}
}

func TestCountersIncrementIndependently(t *testing.T) {
	r := NewRegistry()
	r.FilesLoadedTotal.Inc()
	r.FilesLoadedTotal.Inc()
	r.ElementsLoadedTotal.WithLabelValues("gate").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(r.FilesLoadedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.ElementsLoadedTotal.WithLabelValues("gate")))
}

func TestTopEventsGaugeSet(t *testing.T) {
	r := NewRegistry()
	r.TopEventsTotal.Set(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(r.TopEventsTotal))
}
