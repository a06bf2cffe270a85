package metrics

import (
	"net/http"

	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes lifecycle counters on its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	transitions   *prometheus.CounterVec
	refunds       *prometheus.CounterVec
	refundedTotal prometheus.Counter
	expirations   prometheus.Counter
}

var _ interfaces.IMetrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fsb_document_transitions_total",
			Help: "Document lifecycle transitions, labeled by document, action and outcome",
		}, []string{"document", "action", "outcome"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fsb_refunds_total",
			Help: "Refund requests, labeled by outcome",
		}, []string{"outcome"}),
		refundedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsb_refunded_amount_total",
			Help: "Sum of approved refund amounts",
		}),
		expirations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsb_quote_expirations_total",
			Help: "Sent quotes whose countdown reached the deadline",
		}),
	}
	r.registry.MustRegister(
		r.transitions, r.refunds, r.refundedTotal, r.expirations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Transition(document, action, outcome string) {
	r.transitions.WithLabelValues(document, action, outcome).Inc()
}

func (r *Recorder) Refund(outcome string, amount float64) {
	r.refunds.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK && amount > 0 {
		r.refundedTotal.Add(amount)
	}
}

func (r *Recorder) QuoteExpired() {
	r.expirations.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeUpstream = "upstream_error"
	OutcomeError    = "error"
)

// Nop discards every observation.
type Nop struct{}

var _ interfaces.IMetrics = Nop{}

func (Nop) Transition(string, string, string) {}
func (Nop) Refund(string, float64)            {}
func (Nop) QuoteExpired()                     {}
