// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	downloadRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playrelay_download_redirects_total",
		Help: "Download endpoint requests by outcome",
	}, []string{"outcome"}) // outcome=redirect|presigned|missing|invalid|failed

	pageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playrelay_page_renders_total",
		Help: "HTML pages rendered by page",
	}, []string{"page"}) // page=home|player|error

	libraryProbeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playrelay_library_probe_attempts_total",
		Help: "Player library probe attempts at startup by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	rateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playrelay_ratelimit_rejections_total",
		Help: "Requests rejected by the per-visitor rate limiter",
	})
)

func RecordDownload(outcome string) {
	downloadRedirects.WithLabelValues(outcome).Inc()
}

func RecordPageRender(page string) {
	pageRenders.WithLabelValues(page).Inc()
}

func RecordProbeAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	libraryProbeAttempts.WithLabelValues(outcome).Inc()
}

func RecordRateLimitRejection() {
	rateLimitRejections.Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
