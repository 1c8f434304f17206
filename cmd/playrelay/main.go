package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/playrelay/playrelay/internal/database"
	"github.com/playrelay/playrelay/internal/download"
	"github.com/playrelay/playrelay/internal/geoip"
	"github.com/playrelay/playrelay/internal/loader"
	"github.com/playrelay/playrelay/internal/metrics"
	"github.com/playrelay/playrelay/internal/player"
	"github.com/playrelay/playrelay/internal/server"
	"github.com/playrelay/playrelay/internal/storage"
	"github.com/playrelay/playrelay/internal/views"
)

const probeUserAgent = "playrelay-probe/1.0"

func main() {
	port := getEnv("PORT", "8080")
	baseURL := getEnv("BASE_URL", "http://localhost:8080")

	candidates := getEnvList("PLAYER_SCRIPT_URLS", player.DefaultCandidates)
	stylesheet := getEnv("PLAYER_STYLESHEET_URL", player.DefaultStylesheet)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var recorder *views.Recorder
	geo := geoip.New(os.Getenv("GEOIP_DB_PATH"))
	defer func() { _ = geo.Close() }()
	if geo.Enabled() {
		log.Println("geoip database loaded")
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := database.Connect(ctx, databaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(databaseURL); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		log.Println("database migrations applied")

		recorder = views.NewRecorder(db.Pool, geo, os.Getenv("VIEWER_HASH_KEY"))
	} else {
		log.Println("no DATABASE_URL set, view recording disabled")
	}

	var presigner download.Presigner
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		store, err := storage.New(ctx, storage.Config{
			Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:3900"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         bucket,
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         getEnv("S3_REGION", "eu-central-1"),
		})
		if err != nil {
			log.Fatalf("storage initialization failed: %v", err)
		}
		if err := store.CheckBucket(ctx); err != nil {
			log.Printf("storage bucket check failed: %v", err)
		} else {
			log.Printf("storage bucket %s ready", store.Bucket())
		}
		presigner = store
	}

	var webFS fs.FS
	if dir := os.Getenv("WEB_DIR"); dir != "" {
		webFS = os.DirFS(dir)
		log.Printf("serving client assets from %s", dir)
	} else {
		log.Println("no WEB_DIR set, static assets disabled")
	}

	if getEnv("PROBE_PLAYER_LIBRARY", "false") == "true" {
		go probePlayerLibrary(context.Background(), loader.NewHTTPInjector(nil, probeUserAgent), candidates)
	}

	srv := server.New(server.Config{
		BaseURL:               baseURL,
		WebFS:                 webFS,
		Candidates:            candidates,
		Stylesheet:            stylesheet,
		LicenseKey:            os.Getenv("PLAYER_LICENSE_KEY"),
		Presigner:             presigner,
		Views:                 recorder,
		ShareSecret:           os.Getenv("SHARE_SECRET"),
		S3PublicEndpoint:      os.Getenv("S3_PUBLIC_ENDPOINT"),
		AllowedFrameAncestors: os.Getenv("ALLOWED_FRAME_ANCESTORS"),
		EnableDocs:            getEnv("API_DOCS_ENABLED", "false") == "true",
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("playrelay listening on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownTimeout := time.Duration(getEnvInt64("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	if recorder != nil {
		recorder.Wait()
	}
	log.Println("shutdown complete")
}

// probePlayerLibrary reports which candidate the server can reach. It only
// logs; clients still run their own loader.
func probePlayerLibrary(ctx context.Context, injector loader.Injector, candidates []string) (loader.Result, error) {
	res, err := loader.New(injector, slog.Default()).Load(ctx, candidates)
	var exhausted *loader.ExhaustedError
	attempts := res.Attempts
	if errors.As(err, &exhausted) {
		attempts = exhausted.Attempts
	}
	for _, a := range attempts {
		metrics.RecordProbeAttempt(a.Err == nil)
	}
	if err != nil {
		slog.Warn("player library probe failed", "candidates", len(candidates), "error", err)
		return res, err
	}
	slog.Info("player library reachable", "source", res.Source, "attempts", len(res.Attempts))
	return res, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
