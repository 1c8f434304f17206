package share

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playrelay/playrelay/internal/httputil"
	"github.com/playrelay/playrelay/internal/media"
	"github.com/playrelay/playrelay/internal/validate"
)

const Prefix = "/s/"

type Handler struct {
	secret  string
	baseURL string
	now     func() time.Time
}

func NewHandler(secret, baseURL string) *Handler {
	return &Handler{secret: secret, baseURL: baseURL, now: time.Now}
}

type createRequest struct {
	URL string `json:"url"`
}

type createResponse struct {
	Token        string `json:"token"`
	PlayPath     string `json:"playPath"`
	DownloadPath string `json:"downloadPath"`
	SharePath    string `json:"sharePath"`
	ShareURL     string `json:"shareUrl,omitempty"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ref, err := media.NewReference(req.URL)
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Video URL is required")
		return
	}
	if msg := validate.VideoURL(ref.String()); msg != "" {
		httputil.WriteMessage(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := ref.Target(); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid video URL")
		return
	}

	token, err := GenerateToken(h.secret, ref, h.now())
	if err != nil {
		httputil.WriteMessage(w, http.StatusInternalServerError, "Failed to create share link")
		return
	}
	resp := createResponse{
		Token:        token,
		PlayPath:     media.PlayPath(ref),
		DownloadPath: media.DownPath(ref),
		SharePath:    Prefix + token,
	}
	if h.baseURL != "" {
		resp.ShareURL = h.baseURL + resp.SharePath
	}
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

// Open redirects a share link to the play route of its reference.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if validate.ShareToken(token) != "" {
		httputil.WriteMessage(w, http.StatusNotFound, "Share link not found")
		return
	}
	ref, err := ValidateToken(h.secret, token)
	if err != nil {
		httputil.WriteMessage(w, http.StatusNotFound, "Share link not found")
		return
	}
	http.Redirect(w, r, media.PlayPath(ref), http.StatusFound)
}
