package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the volunteer service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Business Metrics
	ApplicationsSubmittedTotal  prometheus.Counter
	StatusTransitionsTotal      *prometheus.CounterVec
	NotesAddedTotal             prometheus.Counter
	VerificationEmailsTotal     *prometheus.CounterVec
	ActivationsTotal            *prometheus.CounterVec
	OpportunitiesClosedTotal    prometheus.Counter
	CascadedApplicationsClosed  prometheus.Counter
	ChampionAssignmentsModified *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric on the default registerer
func NewMetricsRegistry() *MetricsRegistry {
	return NewMetricsRegistryWith(prometheus.DefaultRegisterer)
}

// NewMetricsRegistryWith registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewMetricsRegistryWith(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volunteers_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "volunteers_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "volunteers_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Business Metrics
		ApplicationsSubmittedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "volunteers_applications_submitted_total",
				Help: "Total applications submitted",
			},
		),
		StatusTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volunteers_status_transitions_total",
				Help: "Application status transitions by target status",
			},
			[]string{"status"},
		),
		NotesAddedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "volunteers_notes_added_total",
				Help: "Total notes appended to applications",
			},
		),
		VerificationEmailsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volunteers_verification_emails_total",
				Help: "Verification emails by purpose and result",
			},
			[]string{"purpose", "result"},
		),
		ActivationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volunteers_activations_total",
				Help: "Activation link attempts by purpose and result",
			},
			[]string{"purpose", "result"},
		),
		OpportunitiesClosedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "volunteers_opportunities_closed_total",
				Help: "Total opportunities closed",
			},
		),
		CascadedApplicationsClosed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "volunteers_cascade_closed_applications_total",
				Help: "Applications force-closed when their opportunity closed",
			},
		),
		ChampionAssignmentsModified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volunteers_champion_assignments_total",
				Help: "Champion assignment changes by action",
			},
			[]string{"action"},
		),
	}
}

func (m *MetricsRegistry) ApplicationSubmitted() {
	if m == nil {
		return
	}
	m.ApplicationsSubmittedTotal.Inc()
}

func (m *MetricsRegistry) StatusTransition(status string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(status).Inc()
}

func (m *MetricsRegistry) NoteAdded() {
	if m == nil {
		return
	}
	m.NotesAddedTotal.Inc()
}

func (m *MetricsRegistry) VerificationEmail(purpose, result string) {
	if m == nil {
		return
	}
	m.VerificationEmailsTotal.WithLabelValues(purpose, result).Inc()
}

func (m *MetricsRegistry) Activation(purpose, result string) {
	if m == nil {
		return
	}
	m.ActivationsTotal.WithLabelValues(purpose, result).Inc()
}

func (m *MetricsRegistry) OpportunityClosed(cascaded int) {
	if m == nil {
		return
	}
	m.OpportunitiesClosedTotal.Inc()
	m.CascadedApplicationsClosed.Add(float64(cascaded))
}

func (m *MetricsRegistry) ChampionAssignment(action string) {
	if m == nil {
		return
	}
	m.ChampionAssignmentsModified.WithLabelValues(action).Inc()
}
