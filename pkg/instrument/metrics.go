package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus cell metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "swapcell").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics. Useful for
	// distinguishing several instrumented cells in one process.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for clone duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus cell metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the clone-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "swapcell",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a swapcell.Observer that records cell activity as Prometheus
// metrics. One Metrics instance may be shared by several cells; use
// WithConstLabels to keep their series apart when registering one per cell.
type Metrics struct {
	accesses      prometheus.Counter
	mutations     prometheus.Counter
	commits       prometheus.Counter
	discards      prometheus.Counter
	cloneDuration prometheus.Histogram
}

// NewMetrics creates and registers the cell metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		accesses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "accesses_total",
			Help:        "Total number of snapshot reads",
			ConstLabels: config.ConstLabels,
		}),
		mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of mutation guards created",
			ConstLabels: config.ConstLabels,
		}),
		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of guard commits",
			ConstLabels: config.ConstLabels,
		}),
		discards: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "discards_total",
			Help:        "Total number of guard discards",
			ConstLabels: config.ConstLabels,
		}),
		cloneDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "clone_duration_seconds",
			Help:        "Time spent cloning the working copy on Mutate",
			Buckets:     config.Buckets,
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObserveAccess implements swapcell.Observer.
func (m *Metrics) ObserveAccess() {
	m.accesses.Inc()
}

// ObserveMutate implements swapcell.Observer.
func (m *Metrics) ObserveMutate(cloneDuration time.Duration) {
	m.mutations.Inc()
	m.cloneDuration.Observe(cloneDuration.Seconds())
}

// ObserveCommit implements swapcell.Observer.
func (m *Metrics) ObserveCommit() {
	m.commits.Inc()
}

// ObserveDiscard implements swapcell.Observer.
func (m *Metrics) ObserveDiscard() {
	m.discards.Inc()
}
