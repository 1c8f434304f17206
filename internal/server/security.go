package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/playrelay/playrelay/internal/httputil"
)

// Hosts the player library pulls further scripts, styles and media from.
var defaultPlayerHosts = []string{
	"https://cdn.jwplayer.com",
	"https://ssl.p.jwpcdn.com",
	"https://content.jwplatform.com",
}

type SecurityConfig struct {
	BaseURL               string
	StorageEndpoint       string
	PlayerSources         []string
	AllowedFrameAncestors string
}

// playerOrigins returns the deduplicated origins of sources plus the default
// player hosts, in a stable order.
func playerOrigins(sources []string) []string {
	seen := make(map[string]bool)
	var origins []string
	add := func(origin string) {
		if origin != "" && !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}
	for _, h := range defaultPlayerHosts {
		add(h)
	}
	for _, src := range sources {
		u, err := url.Parse(src)
		if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			continue
		}
		add(u.Scheme + "://" + u.Host)
	}
	return origins
}

func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := cfg.BaseURL != "" && hasHTTPS(cfg.BaseURL)

	storageSuffix := ""
	if cfg.StorageEndpoint != "" {
		storageSuffix = " " + cfg.StorageEndpoint
	}
	playerSuffix := " " + strings.Join(playerOrigins(cfg.PlayerSources), " ")

	frameAncestors := "'self'"
	if cfg.AllowedFrameAncestors != "" {
		frameAncestors = "'self' " + cfg.AllowedFrameAncestors
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce := httputil.GenerateNonce()
			ctx := httputil.ContextWithNonce(r.Context(), nonce)

			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			if cfg.AllowedFrameAncestors == "" {
				w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			}
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), fullscreen=(self), autoplay=(self)")

			// Media comes from arbitrary user supplied hosts.
			csp := fmt.Sprintf(
				"default-src 'self'; img-src 'self' data: https:%s; media-src 'self' data: blob: https: http:%s; "+
					"script-src 'self' 'nonce-%s' 'wasm-unsafe-eval'%s; style-src 'self' 'nonce-%s'%s; style-src-attr 'unsafe-inline'; "+
					"connect-src 'self' https: http:%s; worker-src 'self' blob:; frame-ancestors %s;",
				storageSuffix, storageSuffix, nonce, playerSuffix, nonce, playerSuffix, storageSuffix, frameAncestors,
			)
			w.Header().Set("Content-Security-Policy", csp)

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hasHTTPS(baseURL string) bool {
	return strings.HasPrefix(baseURL, "https://")
}
