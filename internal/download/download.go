// Package download serves the download redirect endpoint.
package download

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/playrelay/playrelay/internal/httputil"
	"github.com/playrelay/playrelay/internal/media"
	"github.com/playrelay/playrelay/internal/metrics"
	"github.com/playrelay/playrelay/internal/storage"
)

const (
	Filename    = "video.mp4"
	ContentType = "video/mp4"

	MsgRequired = "Video URL is required"
	MsgInvalid  = "Invalid video URL"
	MsgFailed   = "Failed to download video"

	presignExpiry = time.Hour
)

var contentDisposition = `attachment; filename="` + Filename + `"`

// Presigner turns an object reference into a time-limited GET URL.
type Presigner interface {
	PresignDownload(ctx context.Context, obj storage.ObjectRef, filename string, expiry time.Duration) (string, error)
}

type Handler struct {
	presigner Presigner
}

// New returns the handler. A nil presigner rejects s3 references as invalid.
func New(presigner Presigner) *Handler {
	return &Handler{presigner: presigner}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("download: handler panicked", "panic", rec)
			h.fail(w)
		}
	}()

	values, ok := r.URL.Query()["url"]
	if !ok || len(values) != 1 || values[0] == "" {
		metrics.RecordDownload("missing")
		httputil.WriteMessage(w, http.StatusBadRequest, MsgRequired)
		return
	}

	decoded, err := media.Decode(values[0])
	if err != nil {
		metrics.RecordDownload("invalid")
		httputil.WriteMessage(w, http.StatusBadRequest, MsgInvalid)
		return
	}
	ref, err := media.NewReference(decoded)
	if err != nil {
		metrics.RecordDownload("invalid")
		httputil.WriteMessage(w, http.StatusBadRequest, MsgInvalid)
		return
	}
	target, err := ref.Target()
	if err != nil {
		metrics.RecordDownload("invalid")
		httputil.WriteMessage(w, http.StatusBadRequest, MsgInvalid)
		return
	}

	location := target.String()
	outcome := "redirect"
	w.Header().Set("Content-Disposition", contentDisposition)
	w.Header().Set("Content-Type", ContentType)

	if target.Scheme == storage.Scheme {
		obj, err := storage.ParseObjectRef(target)
		if err != nil || h.presigner == nil {
			httputil.ResetHeaders(w, "Content-Disposition")
			metrics.RecordDownload("invalid")
			httputil.WriteMessage(w, http.StatusBadRequest, MsgInvalid)
			return
		}
		signed, err := h.presigner.PresignDownload(r.Context(), obj, Filename, presignExpiry)
		if err != nil {
			if errors.Is(err, storage.ErrBucketNotAllowed) {
				httputil.ResetHeaders(w, "Content-Disposition")
				metrics.RecordDownload("invalid")
				httputil.WriteMessage(w, http.StatusBadRequest, MsgInvalid)
				return
			}
			slog.Error("download: presign failed", "object", obj.String(), "error", err)
			h.fail(w)
			return
		}
		location = signed
		outcome = "presigned"
	}

	metrics.RecordDownload(outcome)
	http.Redirect(w, r, location, http.StatusFound)
}

func (h *Handler) fail(w http.ResponseWriter) {
	httputil.ResetHeaders(w, "Content-Disposition", "Location")
	metrics.RecordDownload("failed")
	httputil.WriteMessage(w, http.StatusInternalServerError, MsgFailed)
}
