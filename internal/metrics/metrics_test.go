package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDownloadIncrementsOutcome(t *testing.T) {
	before := testutil.ToFloat64(downloadRedirects.WithLabelValues("invalid"))
	RecordDownload("invalid")
	after := testutil.ToFloat64(downloadRedirects.WithLabelValues("invalid"))

	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestRecordProbeAttemptLabels(t *testing.T) {
	success := testutil.ToFloat64(libraryProbeAttempts.WithLabelValues("success"))
	failure := testutil.ToFloat64(libraryProbeAttempts.WithLabelValues("failure"))

	RecordProbeAttempt(true)
	RecordProbeAttempt(false)
	RecordProbeAttempt(false)

	if got := testutil.ToFloat64(libraryProbeAttempts.WithLabelValues("success")) - success; got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(libraryProbeAttempts.WithLabelValues("failure")) - failure; got != 2 {
		t.Errorf("expected 2 failures, got %v", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordPageRender("home")
	RecordRateLimitRejection()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"playrelay_page_renders_total", "playrelay_ratelimit_rejections_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in exposition", name)
		}
	}
}
