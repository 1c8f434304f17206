package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const staticPrefix = "/static/"

// staticFileServer serves the wasm client and its loader. Directories and
// missing files are answered with 404 rather than a listing.
type staticFileServer struct {
	fileServer http.Handler
	fileSystem fs.FS
}

func newStaticFileServer(fsys fs.FS) *staticFileServer {
	return &staticFileServer{
		fileServer: http.StripPrefix(strings.TrimSuffix(staticPrefix, "/"), http.FileServer(http.FS(fsys))),
		fileSystem: fsys,
	}
}

func (s *staticFileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), staticPrefix)

	info, err := fs.Stat(s.fileSystem, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	if strings.HasSuffix(name, ".wasm") {
		w.Header().Set("Content-Type", "application/wasm")
	}
	w.Header().Set("Cache-Control", "no-cache")

	s.fileServer.ServeHTTP(w, r)
}
