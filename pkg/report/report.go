// Package report holds the sinks failed requests are reported to. Reporting
// is best effort: a Reporter never returns an error to its caller.
package report

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Reporter records an error somewhere outside the request path.
type Reporter interface {
	Report(err error)
}

// Func adapts a function to Reporter.
type Func func(err error)

func (f Func) Report(err error) { f(err) }

// Nop discards every report.
type Nop struct{}

func (Nop) Report(error) {}

// Multi fans a report out to every reporter.
type Multi []Reporter

func (m Multi) Report(err error) {
	for _, r := range m {
		Safe(r, err)
	}
}

// Safe calls r.Report and swallows any panic it raises.
func Safe(r Reporter, err error) {
	if r == nil {
		return
	}
	defer func() { _ = recover() }()
	r.Report(err)
}

// LogReporter writes reports to a zap logger.
type LogReporter struct {
	Logger *zap.SugaredLogger
}

func NewLogReporter(logger *zap.SugaredLogger) *LogReporter {
	return &LogReporter{Logger: logger}
}

func (r *LogReporter) Report(err error) {
	r.Logger.Warnw("reported error", "error", err)
}

// StatusCoder is implemented by errors that know the HTTP status involved.
type StatusCoder interface {
	StatusCode() int
}

// PrometheusReporter counts failures by HTTP status ("none" when no
// response was received).
type PrometheusReporter struct {
	failures *prometheus.CounterVec
}

// NewPrometheusReporter creates the counter and registers it with reg.
func NewPrometheusReporter(reg prometheus.Registerer) (*PrometheusReporter, error) {
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopify",
		Subsystem: "graphql",
		Name:      "failures_total",
		Help:      "Failed Shopify GraphQL requests by HTTP status.",
	}, []string{"status"})

	if reg != nil {
		if err := reg.Register(failures); err != nil {
			return nil, err
		}
	}

	return &PrometheusReporter{failures: failures}, nil
}

func (r *PrometheusReporter) Report(err error) {
	r.failures.WithLabelValues(statusLabel(err)).Inc()
}

// Counter exposes the underlying vector, mainly for tests.
func (r *PrometheusReporter) Counter() *prometheus.CounterVec {
	return r.failures
}

func statusLabel(err error) string {
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() > 0 {
		return strconv.Itoa(sc.StatusCode())
	}
	return "none"
}
