package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockroom/stockroom/internal/metrics"
)

func TestMetrics_Exposition(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()
	recorder.IncProductCreated()
	recorder.IncProductCreated()
	recorder.IncUserRegistered()
	recorder.IncLoginFailed()

	h := NewMetricsHandler(recorder)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	body := rec.Body.String()
	for _, line := range []string{
		"stockroom_products_created_total 2",
		"stockroom_users_registered_total 1",
		`stockroom_logins_total{status="failed"} 1`,
		`stockroom_logins_total{status="success"} 0`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("exposition missing %q:\n%s", line, body)
		}
	}
}

func TestMetrics_NilSnapshotter(t *testing.T) {
	t.Parallel()

	h := NewMetricsHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
