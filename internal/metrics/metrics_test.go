package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/items/1", "/items/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	got := testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/items/{id}", "418"))
	if got != 2 {
		t.Errorf("request count = %v, want 2", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.GradeVerdicts.WithLabelValues("too_many_unknown").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `cricas_grade_verdicts_total{kind="too_many_unknown"} 1`) {
		t.Errorf("metrics output missing verdict counter:\n%s", body)
	}
}
