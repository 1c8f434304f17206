package web

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderHomeWritesStatusAndFlash(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderHome(rec, http.StatusBadRequest, HomeData{
		Nonce:     "n0nce",
		Flash:     "URL Required",
		SampleURL: "https://example.com/a.mp4",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("unexpected Content-Type %q", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<style nonce="n0nce">`) {
		t.Error("expected nonced style element")
	}
	if !strings.Contains(body, "URL Required") {
		t.Error("expected flash message")
	}
	if !strings.Contains(body, `href="/?url=https%3a%2f%2fexample.com%2fa.mp4"`) {
		t.Errorf("expected query-escaped sample link, got %s", body)
	}
}

func TestRenderHomeEscapesURL(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderHome(rec, http.StatusOK, HomeData{URL: `"><script>alert(1)</script>`})

	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("expected URL to be escaped")
	}
	if strings.Contains(body, "URL Required") {
		t.Error("expected no flash without a message")
	}
}

func TestRenderPlayerEmbedsConfig(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderPlayer(rec, PlayerData{
		Nonce:           "n0nce",
		Title:           "PlayRelay",
		ConfigJSON:      template.JS(`{"url":"https://e.com/a.mp4"}`),
		DownloadPath:    "/Down/https%3A%2F%2Fe.com%2Fa.mp4",
		StretchingModes: []string{"fill", "uniform"},
		WasmPath:        "/static/playrelay.wasm",
		WasmExecPath:    "/static/wasm_exec.js",
	})

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<script type="application/json" id="player-config">{"url":"https://e.com/a.mp4"}</script>`,
		`<script nonce="n0nce" src="/static/wasm_exec.js"></script>`,
		`<option value="fill">fill</option>`,
		`<option value="uniform">uniform</option>`,
		`id="loading-overlay"`,
		`id="error-view"`,
		`href="/Down/https%3A%2F%2Fe.com%2Fa.mp4"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected player page to contain %q", want)
		}
	}
}

func TestRenderErrorDefaultsHomePath(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(rec, http.StatusBadRequest, ErrorData{Title: "No video", Message: "No video URL provided"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "No video URL provided") {
		t.Error("expected message in body")
	}
	if !strings.Contains(body, `href="/"`) {
		t.Error("expected home link to default to /")
	}
}
