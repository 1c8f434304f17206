package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSONSetsHeaderAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", decoded["status"])
	}
}

func TestWriteMessageUsesMessageField(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
	}{
		{"BadRequest", http.StatusBadRequest, "Video URL is required"},
		{"NotFound", http.StatusNotFound, "Share link not found"},
		{"InternalError", http.StatusInternalServerError, "Failed to download video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteMessage(rec, tt.status, tt.message)

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			var decoded MessageBody
			if err := json.NewDecoder(rec.Body).Decode(&decoded); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}
			if decoded.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, decoded.Message)
			}
		})
	}
}

func TestResetHeadersRemovesStagedHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Disposition", `attachment; filename="video.mp4"`)
	rec.Header().Set("Content-Type", "video/mp4")

	ResetHeaders(rec, "Content-Disposition", "Content-Type")

	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("expected Content-Disposition to be removed")
	}
	if rec.Header().Get("Content-Type") != "" {
		t.Error("expected Content-Type to be removed")
	}
}
