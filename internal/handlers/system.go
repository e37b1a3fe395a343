package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics proxies the promhttp handler.
// @Summary     Prometheus metrics
// @Description Exposes Prometheus metrics in text exposition format.
// @Tags        Monitoring
// @Produce     plain
// @Success     200 {string} string "Prometheus exposition format (text/plain; version=0.0.4)"
// @Router      /metrics [get]
func PrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
