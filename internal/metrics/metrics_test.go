package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMirror(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveMirror("answers", 10*time.Millisecond, nil)
	m.ObserveMirror("answers", 10*time.Millisecond, errors.New("down"))
	m.ObserveMirror("submit", time.Millisecond, errors.New("down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MirrorFailures.WithLabelValues("answers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MirrorFailures.WithLabelValues("submit")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.MirrorDuration))
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncrementSessionCreated()
	m.IncrementAnswers("intro")
	m.IncrementAnswers("intro")
	m.AddSessionsExpired(3)
	m.AddSessionsExpired(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnswersRecorded.WithLabelValues("intro")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsExpired))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementSessionCreated()
		m.IncrementAnswers("intro")
		m.ObserveMirror("create", time.Second, errors.New("x"))
	})
}
