package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	registerOnce sync.Once //nolint:gochecknoglobals

	statements  *prometheus.CounterVec //nolint:gochecknoglobals
	writeErrors prometheus.Counter     //nolint:gochecknoglobals
)

// PrometheusHook counts log statements per level.
type PrometheusHook struct {
	statements *prometheus.CounterVec
}

// Run implements zerolog.Hook.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level != zerolog.NoLevel && h.statements != nil {
		h.statements.WithLabelValues(level.String()).Inc()
	}
}

// NewPrometheusHook registers the log metrics on first use.
// The service label of the first call is kept for the life of the process.
func NewPrometheusHook(service string) PrometheusHook {
	registerOnce.Do(func() {
		labels := prometheus.Labels{"service": service}

		statements = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: labels,
			},
			[]string{"level"},
		)

		writeErrors = promauto.NewCounter(prometheus.CounterOpts{
			Name:        "log_write_errors_total",
			Help:        "Number of log events that could not be written.",
			ConstLabels: labels,
		})
	})

	return PrometheusHook{statements: statements}
}
