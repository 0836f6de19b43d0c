package handler

import (
	"fmt"
	"net/http"

	"github.com/hireboard/hireboard/internal/metrics"
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

	writeMetric(w, "hireboard_signups_total %d\n", snap.Signups)
	writeMetric(w, "hireboard_logins_total{status=\"success\"} %d\n", snap.Logins)
	writeMetric(w, "hireboard_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "hireboard_jobs_created_total %d\n", snap.JobsCreated)
	writeMetric(w, "hireboard_jobs_updated_total %d\n", snap.JobsUpdated)
	writeMetric(w, "hireboard_jobs_deleted_total %d\n", snap.JobsDeleted)

	writeMetric(w, "hireboard_applications_total{status=\"created\"} %d\n", snap.ApplicationsCreated)
	writeMetric(w, "hireboard_applications_total{status=\"duplicate\"} %d\n", snap.ApplicationDuplicates)

	writeMetric(w, "hireboard_forbidden_total %d\n", snap.Forbidden)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
