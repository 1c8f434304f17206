package player

import (
	"encoding/json"
	"testing"

	"github.com/playrelay/playrelay/internal/media"
)

func TestNewBootstrapDefaults(t *testing.T) {
	ref, _ := media.NewReference(media.SampleURL)
	b := NewBootstrap(ref, nil, DefaultStylesheet, "")

	if b.URL != media.SampleURL {
		t.Errorf("expected url %q, got %q", media.SampleURL, b.URL)
	}
	if b.Container != DefaultContainer {
		t.Errorf("expected container %q, got %q", DefaultContainer, b.Container)
	}
	if len(b.Candidates) != len(DefaultCandidates) {
		t.Fatalf("expected %d candidates, got %d", len(DefaultCandidates), len(b.Candidates))
	}
	b.Candidates[0] = "changed"
	if DefaultCandidates[0] == "changed" {
		t.Error("expected candidates to be copied")
	}
}

func TestBootstrapJSONOmitsEmptyOptionalFields(t *testing.T) {
	b := NewBootstrap(media.Reference{}, []string{"https://a.example/p.js"}, "", "")
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"stylesheet", "licenseKey", "setup"} {
		if _, ok := raw[key]; ok {
			t.Errorf("expected %q to be omitted", key)
		}
	}
	if !b.Reference().IsZero() {
		t.Error("expected zero reference for empty url")
	}
}
