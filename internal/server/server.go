package server

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playrelay/playrelay/internal/docs"
	"github.com/playrelay/playrelay/internal/download"
	"github.com/playrelay/playrelay/internal/httputil"
	"github.com/playrelay/playrelay/internal/media"
	"github.com/playrelay/playrelay/internal/metrics"
	"github.com/playrelay/playrelay/internal/player"
	"github.com/playrelay/playrelay/internal/ratelimit"
	"github.com/playrelay/playrelay/internal/share"
	"github.com/playrelay/playrelay/internal/validate"
	"github.com/playrelay/playrelay/internal/views"
)

const HealthMessage = "Player service is running"

type Config struct {
	BaseURL    string
	WebFS      fs.FS
	Candidates []string
	Stylesheet string
	LicenseKey string

	// Presigner serves s3:// references; nil rejects them.
	Presigner download.Presigner
	// Views records hits and serves counts; nil disables both.
	Views       *views.Recorder
	ShareSecret string

	S3PublicEndpoint      string
	AllowedFrameAncestors string
	EnableDocs            bool
}

type Server struct {
	router       chi.Router
	cfg          Config
	download     *download.Handler
	shareHandler *share.Handler
	views        *views.Recorder
	webFS        fs.FS
}

func New(cfg Config) *Server {
	if len(cfg.Candidates) == 0 {
		cfg.Candidates = player.DefaultCandidates
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(slogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:               cfg.BaseURL,
		StorageEndpoint:       cfg.S3PublicEndpoint,
		PlayerSources:         append(append([]string(nil), cfg.Candidates...), cfg.Stylesheet),
		AllowedFrameAncestors: cfg.AllowedFrameAncestors,
	}))

	s := &Server{
		router:   r,
		cfg:      cfg,
		download: download.New(cfg.Presigner),
		views:    cfg.Views,
		webFS:    cfg.WebFS,
	}
	if cfg.ShareSecret != "" {
		s.shareHandler = share.NewHandler(cfg.ShareSecret, cfg.BaseURL)
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/player/config", s.handlePlayerConfig)
	s.router.Get("/api/limits", s.handleLimits)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.router.Get("/", s.handleHome)
	s.router.Get("/Play", s.handlePlay)
	s.router.Get("/Play/*", s.handlePlay)
	s.router.Get("/Down", s.handleDown)
	s.router.Get("/Down/*", s.handleDown)

	navigationLimiter := ratelimit.NewLimiter(5, 20)
	s.router.With(navigationLimiter.Middleware).Get("/open", s.handleOpen)

	downloadLimiter := ratelimit.NewLimiter(2, 10)
	s.router.With(downloadLimiter.Middleware).Method(http.MethodGet, media.DownloadAPI, s.download)

	if s.shareHandler != nil {
		shareLimiter := ratelimit.NewLimiter(0.5, 5)
		s.router.With(shareLimiter.Middleware).Post("/api/share", s.shareHandler.Create)
		s.router.Get(share.Prefix+"{token}", s.shareHandler.Open)
	}

	if s.views != nil {
		s.router.Get("/api/views", s.views.CountsHandler)
	}

	if s.cfg.EnableDocs {
		s.router.Get("/api/docs", docs.HandleDocs)
		s.router.Get(docs.SpecPath, docs.HandleSpec)
	}

	if s.webFS != nil {
		s.router.Handle(staticPrefix+"*", newStaticFileServer(s.webFS))
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: HealthMessage})
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, validate.FieldLimits())
}
