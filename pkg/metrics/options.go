package metrics

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager. Options receive values straight from config,
// so each one normalizes its input and ignores what would make registration panic.
type Option func(*Manager)

// WithNamespace sets the first metric name component. Blank keeps "hello".
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if ns := strings.TrimSpace(namespace); ns != "" {
			m.namespace = ns
		}
	}
}

// WithSubsystem sets the second metric name component. Blank keeps "api".
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if sub := strings.TrimSpace(subsystem); sub != "" {
			m.subsystem = sub
		}
	}
}

// WithMetricPrefix is prepended to each metric's base name. Surrounding
// underscores are dropped since the separator is added by the manager.
func WithMetricPrefix(prefix string) Option {
	return func(m *Manager) {
		if p := strings.Trim(strings.TrimSpace(prefix), "_"); p != "" {
			m.metricPrefix = p
		}
	}
}

// WithHistogramBuckets sets the request latency bounds in milliseconds.
// Bounds are sorted and deduplicated; non-positive values are dropped.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		var out []float64
		for _, b := range buckets {
			if b > 0 {
				out = append(out, b)
			}
		}
		if len(out) == 0 {
			return
		}
		slices.Sort(out)
		m.histogramBuckets = slices.Compact(out)
	}
}

// WithMetricsEnabled turns recording on or off.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled.Store(enabled)
	}
}

// WithRefreshInterval sets how often callers should sample runtime gauges.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithCustomLabels merges constant labels into every metric. Entries with a
// blank key or value are skipped; the caller's map is not retained.
func WithCustomLabels(labels map[string]string) Option {
	return func(m *Manager) {
		for k, v := range labels {
			if strings.TrimSpace(k) == "" || v == "" {
				continue
			}
			if m.customLabels == nil {
				m.customLabels = make(map[string]string, len(labels))
			}
			m.customLabels[k] = v
		}
	}
}

// WithPrometheusRegistry sets the registerer collectors are attached to.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Labels returns a copy of the constant labels applied to every metric.
func (m *Manager) Labels() map[string]string {
	return maps.Clone(m.customLabels)
}
