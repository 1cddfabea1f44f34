package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodPost, "/ops/jobs/dsr-compile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", rec.Code)
	}

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRec, metricsReq)

	body := metricsRec.Body.String()
	if !strings.Contains(body, "artissales_http_requests_total") {
		t.Fatalf("expected request counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(body, `code="202"`) {
		t.Fatalf("expected 202 label in exposition, got:\n%s", body)
	}
}

func TestNilMetricsHandlerDegrades(t *testing.T) {
	var metrics *Metrics

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	if metrics.Registry() != nil {
		t.Fatal("expected nil registry from nil metrics")
	}
	if NewMetrics().Registry() == nil {
		t.Fatal("expected registry from constructed metrics")
	}
}
