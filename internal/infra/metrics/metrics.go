package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ReasonValidation = "validation"
	ReasonNotFound   = "not_found"
)

type Metrics struct {
	activities *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		activities: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poultry_activities_recorded_total",
			Help: "Ledger activities recorded, by activity type.",
		}, []string{"type"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poultry_commands_rejected_total",
			Help: "Commands rejected before any mutation, by reason.",
		}, []string{"reason"}),
	}
}

// Nil receivers are fine so callers don't have to carry metrics in tests.

func (m *Metrics) ActivityRecorded(activityType string) {
	if m == nil {
		return
	}
	m.activities.WithLabelValues(activityType).Inc()
}

func (m *Metrics) CommandRejected(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}
