package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPurchase(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())

	m.RecordPurchase(330)
	m.RecordPurchase(1263)
	m.RecordPurchaseFailure("not_found")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.purchases.WithLabelValues("committed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.purchases.WithLabelValues("not_found")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordPurchase(100)
		m.RecordPurchaseFailure("internal")
	})
}
