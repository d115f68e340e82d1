package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestInitRegistryIdempotent(t *testing.T) {
	first := InitRegistry()
	second := InitRegistry()

	assert.Same(t, first, second)
}

func TestRecordHelpers(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordAPIRequest("match", "200")
		RecordValidationFailure("match")
		RecordFeatureRow()
		RecordGateSkip()
		TeamsTracked.Set(42)
		FeatureBuildDuration.Observe(1.5)
	})
}

func TestHandlerServesRegistry(t *testing.T) {
	InitRegistry()
	assert.NotNil(t, Handler())
}
