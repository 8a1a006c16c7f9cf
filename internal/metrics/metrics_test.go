package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegistry_BusinessCounters(t *testing.T) {
	m := NewMetricsRegistryWith(prometheus.NewRegistry())

	m.ApplicationSubmitted()
	m.StatusTransition("Assigned")
	m.StatusTransition("Assigned")
	m.OpportunityClosed(3)

	if got := testutil.ToFloat64(m.ApplicationsSubmittedTotal); got != 1 {
		t.Errorf("Expected 1 submission, got %v", got)
	}
	if got := testutil.ToFloat64(m.StatusTransitionsTotal.WithLabelValues("Assigned")); got != 2 {
		t.Errorf("Expected 2 transitions, got %v", got)
	}
	if got := testutil.ToFloat64(m.CascadedApplicationsClosed); got != 3 {
		t.Errorf("Expected 3 cascaded closures, got %v", got)
	}
}

func TestMetricsRegistry_NilSafe(t *testing.T) {
	var m *MetricsRegistry
	m.ApplicationSubmitted()
	m.NoteAdded()
	m.Activation("email-activate", "ok")
}

func TestNewMetricsRegistryWith_Twice(t *testing.T) {
	NewMetricsRegistryWith(prometheus.NewRegistry())
	NewMetricsRegistryWith(prometheus.NewRegistry())
}
