package handler

import (
	"fmt"
	"net/http"

	"github.com/stockroom/stockroom/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "stockroom_products_created_total %d\n", snap.ProductsCreated)
	writeMetric(w, "stockroom_products_updated_total %d\n", snap.ProductsUpdated)
	writeMetric(w, "stockroom_products_deleted_total %d\n", snap.ProductsDeleted)
	writeMetric(w, "stockroom_products_listed_total %d\n", snap.ProductsListed)
	writeMetric(w, "stockroom_products_retrieved_total %d\n", snap.ProductsRetrieved)
	writeMetric(w, "stockroom_slug_retries_total %d\n", snap.SlugRetriesTotal)

	writeMetric(w, "stockroom_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "stockroom_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "stockroom_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "stockroom_auth_rejected_total %d\n", snap.AuthRejected)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
