package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/domain"
)

var _ domain.RegistrationMetrics = (*Metrics)(nil)

func TestMetrics_RecordRegistration(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordRegistration(domain.OutcomeCreated)
	m.RecordRegistration(domain.OutcomeCreated)
	m.RecordRegistration(domain.OutcomeCapacityExceeded)
	m.RecordEventCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues(domain.OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues(domain.OutcomeCapacityExceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsCreated))
}

func TestMetrics_Middleware(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{event_id}/attendees", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware(mux)

	for _, path := range []string{"/events/1/attendees", "/events/2/attendees", "/nope"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "GET /events/{event_id}/attendees", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", unmatchedRoute, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	m.RecordEventCreated()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "events_created_total 1"))
}
