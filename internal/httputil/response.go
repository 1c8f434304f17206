package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageBody is the JSON shape of every non-2xx API response.
type MessageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("httputil: failed to encode response", "status", status, "error", err)
	}
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageBody{Message: message})
}

// ResetHeaders drops headers staged by a handler that failed midway, so the
// error response does not inherit them.
func ResetHeaders(w http.ResponseWriter, names ...string) {
	for _, name := range names {
		w.Header().Del(name)
	}
}
