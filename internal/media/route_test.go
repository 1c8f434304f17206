package media

import (
	"errors"
	"testing"
)

func TestResolvePlayRoute(t *testing.T) {
	intent, err := Resolve("/Play/https%3A%2F%2Fexample.com%2Fv.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Mode != ModePlay {
		t.Errorf("expected play mode, got %s", intent.Mode)
	}
	if intent.Ref.String() != "https://example.com/v.mp4" {
		t.Errorf("expected decoded reference, got %q", intent.Ref.String())
	}
}

func TestResolveDownloadRoute(t *testing.T) {
	intent, err := Resolve("/Down/https%3A%2F%2Fexample.com%2Fv.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Mode != ModeDownload {
		t.Errorf("expected download mode, got %s", intent.Mode)
	}
	if got := DownloadAPIPath(intent.Ref); got != "/api/download?url=https%3A%2F%2Fexample.com%2Fv.mp4" {
		t.Errorf("unexpected download API path %q", got)
	}
}

func TestResolveKeepsUnencodedSlashes(t *testing.T) {
	intent, err := Resolve("/Play/https://example.com/a/b.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Ref.String() != "https://example.com/a/b.mp4" {
		t.Errorf("expected greedy remainder, got %q", intent.Ref.String())
	}
}

func TestResolveWithoutReference(t *testing.T) {
	paths := []string{"/", "/Play/", "/Down/", "/Play/%20%20", "/Watch/abc", "/play/abc", "/Play/%E0%A4%A"}
	for _, p := range paths {
		if _, err := Resolve(p); !errors.Is(err, ErrNoReference) {
			t.Errorf("Resolve(%q): expected ErrNoReference, got %v", p, err)
		}
	}
}

func TestRoutePathsRoundTripThroughResolve(t *testing.T) {
	ref, _ := NewReference("https://example.com/clips/a b+c.mp4?sig=x%2Fy")

	play, err := Resolve(PlayPath(ref))
	if err != nil {
		t.Fatalf("resolve play path: %v", err)
	}
	if play.Mode != ModePlay || play.Ref != ref {
		t.Errorf("play path did not round trip: %+v", play)
	}

	down, err := Resolve(DownPath(ref))
	if err != nil {
		t.Fatalf("resolve down path: %v", err)
	}
	if down.Mode != ModeDownload || down.Ref != ref {
		t.Errorf("down path did not round trip: %+v", down)
	}
}
