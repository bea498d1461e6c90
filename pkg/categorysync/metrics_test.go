package categorysync

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	m := NewMetrics()

	m.Observe(testCategory, &Summary{Accounts: 3, Labels: 2, Rules: 2, Truncated: 1, Unexpected: 1}, nil, now)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.accounts.WithLabelValues(testCategory)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.rules.WithLabelValues(testCategory)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.truncatedAccounts.WithLabelValues(testCategory)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.brokenPaths.WithLabelValues(testCategory)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.unexpectedParents.WithLabelValues(testCategory)))
	assert.Equal(t, float64(now.Unix()), testutil.ToFloat64(m.lastSuccessTimestamp.WithLabelValues(testCategory)))

	later := now.Add(time.Hour)
	m.Observe(testCategory, nil, errors.New("boom"), later)
	assert.Equal(t, float64(later.Unix()), testutil.ToFloat64(m.lastFailureTimestamp.WithLabelValues(testCategory)))
	assert.Equal(t, float64(now.Unix()), testutil.ToFloat64(m.lastSuccessTimestamp.WithLabelValues(testCategory)), "a failure must not move the success timestamp")
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Observe(testCategory, &Summary{Accounts: 3, Labels: 2, Rules: 2}, nil, time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "ou_cost_category.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ou_cost_category_rules{cost_category="OUPath"} 2`)
	assert.Contains(t, string(data), `ou_cost_category_accounts{cost_category="OUPath"} 3`)
	assert.Contains(t, string(data), `ou_cost_category_last_success_timestamp_seconds{cost_category="OUPath"} 1.7e+09`)
}
