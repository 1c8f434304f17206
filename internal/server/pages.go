package server

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/playrelay/playrelay/internal/httputil"
	"github.com/playrelay/playrelay/internal/media"
	"github.com/playrelay/playrelay/internal/player"
	"github.com/playrelay/playrelay/internal/validate"
	"github.com/playrelay/playrelay/internal/web"
)

const (
	wasmPath     = staticPrefix + "playrelay.wasm"
	wasmExecPath = staticPrefix + "wasm_exec.js"

	msgURLRequired = "URL Required"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	web.RenderHome(w, http.StatusOK, web.HomeData{
		Nonce:     httputil.NonceFromContext(r.Context()),
		URL:       r.URL.Query().Get("url"),
		SampleURL: media.SampleURL,
	})
}

// handleOpen turns the home form into a play or download navigation.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	ref, err := media.NewReference(r.URL.Query().Get("url"))
	if err != nil {
		web.RenderHome(w, http.StatusBadRequest, web.HomeData{
			Nonce:     httputil.NonceFromContext(r.Context()),
			Flash:     msgURLRequired,
			SampleURL: media.SampleURL,
		})
		return
	}

	target := media.PlayPath(ref)
	if r.URL.Query().Get("action") == media.ModeDownload.String() {
		target = media.DownPath(ref)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request, want media.Mode) (media.Intent, bool) {
	intent, err := media.Resolve(r.URL.EscapedPath())
	if err != nil || intent.Mode != want {
		web.RenderError(w, http.StatusBadRequest, web.ErrorData{
			Nonce:   httputil.NonceFromContext(r.Context()),
			Title:   "No video",
			Message: media.NoReferenceMessage,
		})
		return media.Intent{}, false
	}
	if s.views != nil {
		s.views.Record(r, intent)
	}
	return intent, true
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	intent, ok := s.resolve(w, r, media.ModePlay)
	if !ok {
		return
	}

	boot := player.NewBootstrap(intent.Ref, s.cfg.Candidates, s.cfg.Stylesheet, s.cfg.LicenseKey)
	configJSON, err := json.Marshal(boot)
	if err != nil {
		slog.Error("server: failed to encode player bootstrap", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	modes := player.StretchingModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}

	web.RenderPlayer(w, web.PlayerData{
		Nonce:           httputil.NonceFromContext(r.Context()),
		Title:           "PlayRelay",
		ConfigJSON:      template.JS(configJSON),
		DownloadPath:    media.DownPath(intent.Ref),
		Stylesheet:      s.cfg.Stylesheet,
		StretchingModes: names,
		WasmPath:        wasmPath,
		WasmExecPath:    wasmExecPath,
	})
}

// handleDown sends a download navigation to the download endpoint with the
// reference encoded once.
func (s *Server) handleDown(w http.ResponseWriter, r *http.Request) {
	intent, ok := s.resolve(w, r, media.ModeDownload)
	if !ok {
		return
	}
	http.Redirect(w, r, media.DownloadAPIPath(intent.Ref), http.StatusFound)
}

// handlePlayerConfig serves the bootstrap plus the setup record the client
// will hand to the player for ?url=, honoring an optional ?stretching=.
func (s *Server) handlePlayerConfig(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()["url"]
	if len(values) != 1 || strings.TrimSpace(values[0]) == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "Video URL is required")
		return
	}
	if msg := validate.VideoURL(values[0]); msg != "" {
		httputil.WriteMessage(w, http.StatusBadRequest, msg)
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

	stretching := player.DefaultStretching
	if raw := r.URL.Query().Get("stretching"); raw != "" {
		mode, err := player.ParseStretching(raw)
		if err != nil {
			httputil.WriteMessage(w, http.StatusBadRequest, "Invalid stretching mode")
			return
		}
		stretching = mode
	}

	boot := player.NewBootstrap(ref, s.cfg.Candidates, s.cfg.Stylesheet, s.cfg.LicenseKey)
	setup := player.NewSetup(ref, stretching)
	boot.Setup = &setup
	httputil.WriteJSON(w, http.StatusOK, boot)
}
