package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"wandercritic/internal/metrics"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/places/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, slug := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/places/"+slug, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/places/{slug}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}

func TestDomainCounters(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ReviewsSubmitted.WithLabelValues("created").Inc()
	m.ModerationActions.WithLabelValues("report", "resolve").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsSubmitted.WithLabelValues("created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ModerationActions.WithLabelValues("report", "resolve")))
}
