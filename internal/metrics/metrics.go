// Package metrics instruments digest derivation with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the digest collectors.
type Metrics struct {
	// Saidify calls by derivation code and outcome
	SaidifyTotal *prometheus.CounterVec

	// Saidify latency by derivation code
	SaidifyDuration *prometheus.HistogramVec
}

// New registers the digest collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SaidifyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vlei_saidify_total",
			Help: "Total SAID derivations by digest code and outcome",
		}, []string{"code", "outcome"}),

		SaidifyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vlei_saidify_duration_seconds",
			Help:    "Duration of SAID derivations by digest code",
			Buckets: []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"code"}),
	}
}

// ObserveSaidify records one derivation.
func (m *Metrics) ObserveSaidify(code string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.SaidifyTotal.WithLabelValues(code, outcome).Inc()
	m.SaidifyDuration.WithLabelValues(code).Observe(d.Seconds())
}

// coder is implemented by digesters that report their derivation code,
// such as *said.Saider.
type coder interface {
	Code() said.Code
}

// instrumented decorates a Digester.
type instrumented struct {
	next    credential.Digester
	code    string
	metrics *Metrics
	now     func() time.Time
}

// Instrument wraps d so every Saidify call is counted and timed on reg.
// Results and errors of d pass through unchanged.
func Instrument(d credential.Digester, reg prometheus.Registerer) credential.Digester {
	return InstrumentWith(d, New(reg))
}

// InstrumentWith wraps d using already registered collectors.
func InstrumentWith(d credential.Digester, m *Metrics) credential.Digester {
	code := "unknown"
	if c, ok := d.(coder); ok {
		code = string(c.Code())
	}
	return &instrumented{next: d, code: code, metrics: m, now: time.Now}
}

func (i *instrumented) Saidify(sad said.Sad) ([]string, said.Sad, error) {
	start := i.now()
	labels, completed, err := i.next.Saidify(sad)
	i.metrics.ObserveSaidify(i.code, i.now().Sub(start), err)
	return labels, completed, err
}
