package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveBatch(BatchOutcome{Succeeded: 3}, 10*time.Millisecond)
	m.ObserveBatch(BatchOutcome{Succeeded: 3}, 20*time.Millisecond)
	m.ObserveBatch(BatchOutcome{Failed: 1, Cancelled: 2}, 5*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.batches))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.tasks.WithLabelValues(ResultSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks.WithLabelValues(ResultFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tasks.WithLabelValues(ResultCancelled)))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBatch(BatchOutcome{Succeeded: 2}, time.Second)
	})
}
