package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# scrape"))
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/points", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("[]"))
		})
		r.Get("/points/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") == "404" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte("{}"))
		})
		r.Delete("/points/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Put("/assets", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
	})
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/points/{id}", "200"))

	serve(r, http.MethodGet, "/api/v1/points/1")
	serve(r, http.MethodGet, "/api/v1/points/2")

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/points/{id}", "200"))
	if after-before != 2 {
		t.Errorf("requests for /api/v1/points/{id} grew by %v, want 2", after-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method string
		path   string
		route  string
		status string
	}{
		{http.MethodGet, "/api/v1/points", "/api/v1/points", "200"},
		{http.MethodGet, "/api/v1/points/404", "/api/v1/points/{id}", "404"},
		{http.MethodDelete, "/api/v1/points/7", "/api/v1/points/{id}", "204"},
		{http.MethodPut, "/api/v1/assets", "/api/v1/assets", "500"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			serve(r, tc.method, tc.path)
			if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status)); v < 1 {
				t.Errorf("no sample for %s %s %s", tc.method, tc.route, tc.status)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	serve(r, http.MethodGet, "/nowhere")

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got-before != 1 {
		t.Errorf("unmatched requests grew by %v, want 1", got-before)
	}
}

func TestMiddleware_SkipsScrapes(t *testing.T) {
	r := newRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metrics", "200"))

	rr := serve(r, http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metrics", "200")); got != before {
		t.Errorf("scrape was counted: %v -> %v", before, got)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	var during float64
	r.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
		w.WriteHeader(http.StatusOK)
	})

	base := testutil.ToFloat64(httpRequestsInFlight)
	serve(r, http.MethodGet, "/slow")

	if during != base+1 {
		t.Errorf("in flight during request = %v, want %v", during, base+1)
	}
	if got := testutil.ToFloat64(httpRequestsInFlight); got != base {
		t.Errorf("in flight after request = %v, want %v", got, base)
	}
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unmatched"},
		{"/", "/"},
		{"/api/v1/points/{id}", "/api/v1/points/{id}"},
		{"/api/v1/*/assets", "/api/v1/assets"},
		{"/api/v1/assets/", "/api/v1/assets"},
	}
	for _, tc := range tests {
		if got := normalizeRoute(tc.input); got != tc.expected {
			t.Errorf("normalizeRoute(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRegisterHTTPMetrics_Idempotent(t *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()
}
