// Package metrics defines the Prometheus instruments of the survey service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks survey progress and durable mirror health.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsCreated   prometheus.Counter
	SessionsCompleted prometheus.Counter
	SessionsSubmitted prometheus.Counter
	SessionsResumed   prometheus.Counter
	SessionsExpired   prometheus.Counter
	AnswersRecorded   *prometheus.CounterVec
	MirrorDuration    *prometheus.HistogramVec
	MirrorFailures    *prometheus.CounterVec
	IntakesReceived   prometheus.Counter
}

// New registers every instrument with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "survey_sessions_created_total",
			Help: "Total number of survey sessions created",
		}),
		SessionsCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "survey_sessions_completed_total",
			Help: "Total number of sessions whose plan was exhausted",
		}),
		SessionsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "survey_sessions_submitted_total",
			Help: "Total number of sessions explicitly submitted",
		}),
		SessionsResumed: f.NewCounter(prometheus.CounterOpts{
			Name: "survey_sessions_resumed_total",
			Help: "Total number of sessions restored from the durable store",
		}),
		SessionsExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "survey_sessions_expired_total",
			Help: "Total number of idle in-progress sessions dropped by the sweeper",
		}),
		AnswersRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_answers_recorded_total",
			Help: "Answer posts accepted, by block kind",
		}, []string{"kind"}),
		MirrorDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "survey_mirror_write_duration_seconds",
			Help:    "Duration of durable mirror writes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 3},
		}, []string{"op"}),
		MirrorFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_mirror_failures_total",
			Help: "Durable mirror writes that failed, by operation",
		}, []string{"op"}),
		IntakesReceived: f.NewCounter(prometheus.CounterOpts{
			Name: "survey_client_intakes_total",
			Help: "Total number of client intake forms stored",
		}),
	}
}

func (m *Metrics) IncrementSessionCreated() {
	if m != nil {
		m.SessionsCreated.Inc()
	}
}

func (m *Metrics) IncrementSessionCompleted() {
	if m != nil {
		m.SessionsCompleted.Inc()
	}
}

func (m *Metrics) IncrementSessionSubmitted() {
	if m != nil {
		m.SessionsSubmitted.Inc()
	}
}

func (m *Metrics) IncrementSessionResumed() {
	if m != nil {
		m.SessionsResumed.Inc()
	}
}

func (m *Metrics) AddSessionsExpired(n int) {
	if m != nil && n > 0 {
		m.SessionsExpired.Add(float64(n))
	}
}

func (m *Metrics) IncrementAnswers(kind string) {
	if m != nil {
		m.AnswersRecorded.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementIntakes() {
	if m != nil {
		m.IntakesReceived.Inc()
	}
}

// ObserveMirror records the duration and outcome of a mirror write.
func (m *Metrics) ObserveMirror(op string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.MirrorDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		m.MirrorFailures.WithLabelValues(op).Inc()
	}
}
