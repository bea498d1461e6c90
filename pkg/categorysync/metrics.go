package categorysync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const prometheusMetricNamespace = "ou_cost_category"

var costCategoryLabels = []string{"cost_category"}

// Metrics records the outcome of a run so it can be exported through the
// node_exporter textfile collector.
type Metrics struct {
	registry *prometheus.Registry

	accounts             *prometheus.GaugeVec
	labels               *prometheus.GaugeVec
	rules                *prometheus.GaugeVec
	truncatedAccounts    *prometheus.GaugeVec
	brokenPaths          *prometheus.GaugeVec
	unexpectedParents    *prometheus.GaugeVec
	lastSuccessTimestamp *prometheus.GaugeVec
	lastFailureTimestamp *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		accounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "accounts",
			Help:      "Number of accounts found in the organization during the last run.",
		}, costCategoryLabels),
		labels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "labels",
			Help:      "Number of distinct category labels, including the root label.",
		}, costCategoryLabels),
		rules: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "rules",
			Help:      "Number of rules submitted for the cost category.",
		}, costCategoryLabels),
		truncatedAccounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "truncated_accounts",
			Help:      "Number of accounts whose OU path was deeper than the requested depth.",
		}, costCategoryLabels),
		brokenPaths: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "broken_paths",
			Help:      "Number of accounts assigned to the root label because their path to the root was broken.",
		}, costCategoryLabels),
		unexpectedParents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "unexpected_parents",
			Help:      "Number of accounts whose path walk stopped at a parent that was neither an OU nor the root.",
		}, costCategoryLabels),
		lastSuccessTimestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}, costCategoryLabels),
		lastFailureTimestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "last_failure_timestamp_seconds",
			Help:      "Unix time of the last failed run.",
		}, costCategoryLabels),
	}
	m.registry.MustRegister(
		m.accounts,
		m.labels,
		m.rules,
		m.truncatedAccounts,
		m.brokenPaths,
		m.unexpectedParents,
		m.lastSuccessTimestamp,
		m.lastFailureTimestamp,
	)
	return m
}

// Observe records a finished run. summary is ignored when err is non-nil.
func (m *Metrics) Observe(name string, summary *Summary, err error, now time.Time) {
	if err != nil || summary == nil {
		m.lastFailureTimestamp.WithLabelValues(name).Set(float64(now.Unix()))
		return
	}
	m.accounts.WithLabelValues(name).Set(float64(summary.Accounts))
	m.labels.WithLabelValues(name).Set(float64(summary.Labels))
	m.rules.WithLabelValues(name).Set(float64(summary.Rules))
	m.truncatedAccounts.WithLabelValues(name).Set(float64(summary.Truncated))
	m.brokenPaths.WithLabelValues(name).Set(float64(summary.Broken))
	m.unexpectedParents.WithLabelValues(name).Set(float64(summary.Unexpected))
	m.lastSuccessTimestamp.WithLabelValues(name).Set(float64(now.Unix()))
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
