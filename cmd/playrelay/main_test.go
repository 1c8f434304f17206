package main

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/playrelay/playrelay/internal/loader"
)

func TestGetEnvReturnsValueWhenSet(t *testing.T) {
	const key = "TEST_GETENV_SET"
	const expected = "custom-value"

	t.Setenv(key, expected)

	result := getEnv(key, "fallback")
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestGetEnvReturnsFallbackWhenUnset(t *testing.T) {
	const key = "TEST_GETENV_UNSET"
	const fallback = "default-value"

	result := getEnv(key, fallback)
	if result != fallback {
		t.Errorf("expected fallback %q, got %q", fallback, result)
	}
}

func TestGetEnvReturnsFallbackWhenEmpty(t *testing.T) {
	const key = "TEST_GETENV_EMPTY"
	const fallback = "default-value"

	t.Setenv(key, "")

	result := getEnv(key, fallback)
	if result != fallback {
		t.Errorf("expected fallback %q for empty env var, got %q", fallback, result)
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("TEST_GETENV_INT", "42")
	if got := getEnvInt64("TEST_GETENV_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	t.Setenv("TEST_GETENV_INT", "not-a-number")
	if got := getEnvInt64("TEST_GETENV_INT", 7); got != 7 {
		t.Errorf("expected fallback 7 for invalid value, got %d", got)
	}
}

func TestGetEnvListSplitsAndTrims(t *testing.T) {
	t.Setenv("TEST_GETENV_LIST", " https://a.example/p.js, ,https://b.example/p.js ")

	got := getEnvList("TEST_GETENV_LIST", []string{"fallback"})
	want := []string{"https://a.example/p.js", "https://b.example/p.js"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGetEnvListFallsBack(t *testing.T) {
	t.Setenv("TEST_GETENV_LIST", " , ")

	got := getEnvList("TEST_GETENV_LIST", []string{"fallback"})
	if len(got) != 1 || got[0] != "fallback" {
		t.Errorf("expected fallback, got %v", got)
	}
}

type stubInjector struct {
	fail map[string]bool
	seen []string
}

func (s *stubInjector) Inject(ctx context.Context, src string) (loader.Attachment, error) {
	s.seen = append(s.seen, src)
	if s.fail[src] {
		return nil, errors.New("unreachable")
	}
	return nil, nil
}

func TestProbePlayerLibraryStopsAtFirstReachable(t *testing.T) {
	inj := &stubInjector{fail: map[string]bool{"a": true}}

	res, err := probePlayerLibrary(context.Background(), inj, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != "b" {
		t.Errorf("expected source b, got %q", res.Source)
	}
	if !reflect.DeepEqual(inj.seen, []string{"a", "b"}) {
		t.Errorf("expected candidates a then b, got %v", inj.seen)
	}
}

func TestProbePlayerLibraryExhausted(t *testing.T) {
	inj := &stubInjector{fail: map[string]bool{"a": true, "b": true}}

	_, err := probePlayerLibrary(context.Background(), inj, []string{"a", "b"})
	if !errors.Is(err, loader.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}
