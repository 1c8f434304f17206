// Package web renders the server-side HTML pages.
package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/playrelay/playrelay/internal/metrics"
)

const pageCSS = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        html, body { width: 100%; height: 100%; background: #0b0b0f; }
        body {
            color: #e2e8f0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        a { color: #e50914; }
        .btn {
            display: inline-flex;
            align-items: center;
            justify-content: center;
            padding: 0.625rem 1rem;
            border-radius: 6px;
            border: 1px solid #334155;
            background: #1e293b;
            color: #fff;
            font-size: 0.875rem;
            cursor: pointer;
            text-decoration: none;
        }
        .btn:hover { background: #334155; }
        .btn-primary { background: #e50914; border-color: #e50914; }
        .btn-primary:hover { background: #b20710; }
        .actions { display: flex; gap: 0.5rem; flex-wrap: wrap; }
`

type HomeData struct {
	Nonce     string
	URL       string
	Flash     string
	SampleURL string
}

type PlayerData struct {
	Nonce           string
	Title           string
	ConfigJSON      template.JS
	DownloadPath    string
	Stylesheet      string
	StretchingModes []string
	WasmPath        string
	WasmExecPath    string
}

type ErrorData struct {
	Nonce    string
	Title    string
	Message  string
	HomePath string
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>PlayRelay</title>
    <style nonce="{{.Nonce}}">` + pageCSS + `
        body { display: flex; align-items: center; justify-content: center; }
        .card { width: 100%; max-width: 560px; padding: 2rem; }
        h1 { font-size: 1.5rem; margin-bottom: 0.5rem; }
        p { color: #94a3b8; margin-bottom: 1.25rem; font-size: 0.875rem; }
        .flash { color: #ef4444; font-size: 0.8rem; margin-bottom: 0.75rem; }
        input[type="url"] {
            width: 100%;
            padding: 0.625rem 0.75rem;
            border-radius: 6px;
            border: 1px solid #334155;
            background: #1e293b;
            color: #fff;
            font-size: 0.875rem;
            margin-bottom: 0.75rem;
            outline: none;
        }
        input[type="url"]:focus { border-color: #e50914; }
    </style>
</head>
<body>
    <main class="card">
        <h1>PlayRelay</h1>
        <p>Paste a video URL to play it in the browser or download it.</p>
        {{if .Flash}}<div class="flash" role="alert">{{.Flash}}</div>{{end}}
        <form method="get" action="/open">
            <input type="url" name="url" placeholder="https://example.com/video.mp4" value="{{.URL}}" autofocus>
            <div class="actions">
                <button class="btn btn-primary" type="submit" name="action" value="play">Play</button>
                <button class="btn" type="submit" name="action" value="download">Download</button>
                <a class="btn" href="/?url={{.SampleURL}}">Load Sample Video</a>
            </div>
        </form>
    </main>
</body>
</html>`))

var playerTemplate = template.Must(template.New("player").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    {{if .Stylesheet}}<link rel="stylesheet" href="{{.Stylesheet}}">{{end}}
    <style nonce="{{.Nonce}}">` + pageCSS + `
        .layout { display: flex; flex-direction: column; height: 100%; }
        .stage { position: relative; flex: 1; min-height: 0; background: #000; }
        #player { width: 100%; height: 100%; }
        .overlay {
            position: absolute;
            inset: 0;
            display: flex;
            flex-direction: column;
            align-items: center;
            justify-content: center;
            gap: 1rem;
            background: rgba(0, 0, 0, 0.85);
            z-index: 5;
            text-align: center;
            padding: 2rem;
        }
        .overlay[hidden] { display: none; }
        .spinner {
            width: 48px;
            height: 48px;
            border: 4px solid rgba(255, 255, 255, 0.2);
            border-top-color: #e50914;
            border-radius: 50%;
            animation: spin 0.8s linear infinite;
        }
        @keyframes spin { to { transform: rotate(360deg); } }
        .error-message { max-width: 520px; color: #fca5a5; font-size: 0.9rem; }
        .toolbar {
            display: flex;
            align-items: center;
            gap: 0.75rem;
            padding: 8px 12px;
            background: #1e293b;
            font-size: 13px;
        }
        .toolbar .spacer { flex: 1; }
        select { background: #0f172a; color: #e2e8f0; border: 1px solid #334155; border-radius: 4px; padding: 4px 6px; }
    </style>
</head>
<body>
    <div class="layout">
        <div class="stage">
            <div id="player"></div>
            <div id="loading-overlay" class="overlay">
                <div class="spinner"></div>
                <div>Loading player...</div>
            </div>
            <div id="error-view" class="overlay" hidden>
                <div id="error-message" class="error-message"></div>
                <div class="actions">
                    <button id="retry-button" class="btn btn-primary" type="button">Retry</button>
                    <button id="home-button" class="btn" type="button">Home</button>
                </div>
            </div>
        </div>
        <div class="toolbar">
            <a class="btn" href="/">Home</a>
            <a class="btn" href="{{.DownloadPath}}">Download</a>
            <span class="spacer"></span>
            <label for="stretching-select">Stretching</label>
            <select id="stretching-select">
                {{range .StretchingModes}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </div>
    </div>
    <script type="application/json" id="player-config">{{.ConfigJSON}}</script>
    <script nonce="{{.Nonce}}" src="{{.WasmExecPath}}"></script>
    <script nonce="{{.Nonce}}">
        (function() {
            var go = new Go();
            WebAssembly.instantiateStreaming(fetch({{.WasmPath}}), go.importObject)
                .then(function(result) { go.run(result.instance); })
                .catch(function(err) {
                    document.getElementById('loading-overlay').hidden = true;
                    document.getElementById('error-message').textContent = 'Failed to initialize video player';
                    document.getElementById('error-view').hidden = false;
                    console.error(err);
                });
        })();
    </script>
</body>
</html>`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style nonce="{{.Nonce}}">` + pageCSS + `
        body { display: flex; align-items: center; justify-content: center; }
        .container { text-align: center; padding: 2rem; max-width: 420px; }
        h1 { font-size: 1.25rem; margin-bottom: 0.5rem; }
        p { color: #94a3b8; margin-bottom: 1.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <p>{{.Message}}</p>
        <a class="btn btn-primary" href="{{.HomePath}}">Home</a>
    </div>
</body>
</html>`))

func render(w http.ResponseWriter, status int, page string, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	metrics.RecordPageRender(page)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("web: failed to render page", "page", page, "error", err)
	}
}

func RenderHome(w http.ResponseWriter, status int, data HomeData) {
	render(w, status, "home", homeTemplate, data)
}

func RenderPlayer(w http.ResponseWriter, data PlayerData) {
	render(w, http.StatusOK, "player", playerTemplate, data)
}

func RenderError(w http.ResponseWriter, status int, data ErrorData) {
	if data.HomePath == "" {
		data.HomePath = "/"
	}
	render(w, status, "error", errorTemplate, data)
}
