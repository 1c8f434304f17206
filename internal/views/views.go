// Package views records play and download hits per media reference.
package views

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mssola/useragent"
	"golang.org/x/crypto/blake2b"

	"github.com/playrelay/playrelay/internal/database"
	"github.com/playrelay/playrelay/internal/geoip"
	"github.com/playrelay/playrelay/internal/media"
	"github.com/playrelay/playrelay/internal/ratelimit"
)

const recordTimeout = 30 * time.Second

// View is one recorded hit. Hashes keep raw URLs and addresses out of the
// table.
type View struct {
	MediaHash  string
	Mode       string
	ViewerHash string
	Browser    string
	Device     string
	Country    string
}

// Counts is the per-reference summary served by the counts endpoint.
type Counts struct {
	Plays     int64 `json:"plays"`
	Downloads int64 `json:"downloads"`
}

type Recorder struct {
	db  database.DBTX
	geo *geoip.Resolver
	key []byte

	wg sync.WaitGroup
}

// NewRecorder returns a recorder keyed with secret. An empty secret leaves
// viewer hashes unkeyed.
func NewRecorder(db database.DBTX, geo *geoip.Resolver, secret string) *Recorder {
	var key []byte
	if secret != "" {
		sum := blake2b.Sum256([]byte(secret))
		key = sum[:]
	}
	return &Recorder{db: db, geo: geo, key: key}
}

// MediaHash identifies ref without storing it.
func MediaHash(ref media.Reference) string {
	sum := blake2b.Sum256([]byte(ref.String()))
	return hex.EncodeToString(sum[:16])
}

func (rec *Recorder) viewerHash(ip, userAgent string) string {
	h, err := blake2b.New(16, rec.key)
	if err != nil {
		// Only reachable with a key longer than 64 bytes, which NewRecorder never builds.
		panic(err)
	}
	h.Write([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))
}

func classify(userAgent string) (browser, device string) {
	if userAgent == "" {
		return "", ""
	}
	ua := useragent.New(userAgent)
	browser, _ = ua.Browser()
	switch {
	case ua.Bot():
		device = "bot"
	case ua.Mobile():
		device = "mobile"
	default:
		device = "desktop"
	}
	return browser, device
}

// NewView describes the hit r makes on intent.
func (rec *Recorder) NewView(r *http.Request, intent media.Intent) View {
	ip := ratelimit.ClientIP(r)
	browser, device := classify(r.UserAgent())
	return View{
		MediaHash:  MediaHash(intent.Ref),
		Mode:       intent.Mode.String(),
		ViewerHash: rec.viewerHash(ip, r.UserAgent()),
		Browser:    browser,
		Device:     device,
		Country:    rec.geo.Country(ip),
	}
}

// Record stores the hit in the background; failures are logged.
func (rec *Recorder) Record(r *http.Request, intent media.Intent) {
	if intent.Mode == media.ModeNone || intent.Ref.IsZero() {
		return
	}
	view := rec.NewView(r, intent)

	rec.wg.Add(1)
	go func() {
		defer rec.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := rec.Insert(ctx, view); err != nil {
			slog.Error("views: failed to record view", "mode", view.Mode, "media_hash", view.MediaHash, "error", err)
		}
	}()
}

// Wait blocks until every pending Record has finished.
func (rec *Recorder) Wait() {
	rec.wg.Wait()
}

func (rec *Recorder) Insert(ctx context.Context, v View) error {
	if _, err := rec.db.Exec(ctx,
		`INSERT INTO media_views (media_hash, mode, viewer_hash, browser, device, country) VALUES ($1, $2, $3, $4, $5, $6)`,
		v.MediaHash, v.Mode, v.ViewerHash, v.Browser, v.Device, v.Country,
	); err != nil {
		return fmt.Errorf("insert view: %w", err)
	}
	return nil
}

func (rec *Recorder) Counts(ctx context.Context, ref media.Reference) (Counts, error) {
	var c Counts
	err := rec.db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE mode = 'play'), COUNT(*) FILTER (WHERE mode = 'download') FROM media_views WHERE media_hash = $1`,
		MediaHash(ref),
	).Scan(&c.Plays, &c.Downloads)
	if err != nil {
		return Counts{}, fmt.Errorf("count views: %w", err)
	}
	return c, nil
}
