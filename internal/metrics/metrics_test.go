package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RequestsTotal.WithLabelValues("bio200", "success").Inc()
	c.GraphAttempts.WithLabelValues("biomedical").Add(3)
	c.CacheHits.WithLabelValues("doc_groups").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.RequestsTotal.WithLabelValues("bio200", "success")))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.GraphAttempts.WithLabelValues("biomedical")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.CacheHits.WithLabelValues("doc_groups")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
