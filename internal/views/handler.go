package views

import (
	"log/slog"
	"net/http"

	"github.com/playrelay/playrelay/internal/httputil"
	"github.com/playrelay/playrelay/internal/media"
)

// CountsHandler serves GET /api/views?url=.
func (rec *Recorder) CountsHandler(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()["url"]
	if len(values) != 1 || values[0] == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "Video URL is required")
		return
	}
	decoded, err := media.Decode(values[0])
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid video URL")
		return
	}
	ref, err := media.NewReference(decoded)
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid video URL")
		return
	}

	counts, err := rec.Counts(r.Context(), ref)
	if err != nil {
		slog.Error("views: failed to load counts", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Failed to load view counts")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, counts)
}
