package geoip

import (
	"testing"
)

func TestNew_EmptyPath(t *testing.T) {
	r := New("")
	if r.Enabled() {
		t.Error("expected resolver without database to be disabled")
	}
	if country := r.Country("8.8.8.8"); country != "" {
		t.Errorf("expected empty result for disabled resolver, got %q", country)
	}
}

func TestNew_InvalidPath(t *testing.T) {
	r := New("/nonexistent/path.mmdb")
	if r.Enabled() {
		t.Error("expected missing database file to disable lookups")
	}
	if country := r.Country("8.8.8.8"); country != "" {
		t.Errorf("expected empty result, got %q", country)
	}
}

func TestCountry_EmptyOrMalformedIP(t *testing.T) {
	r := New("")
	for _, ip := range []string{"", "not-an-ip"} {
		if country := r.Country(ip); country != "" {
			t.Errorf("expected empty result for %q, got %q", ip, country)
		}
	}
}

func TestNilResolverIsSafe(t *testing.T) {
	var r *Resolver
	if country := r.Country("8.8.8.8"); country != "" {
		t.Errorf("expected empty result from nil resolver, got %q", country)
	}
	if err := r.Close(); err != nil {
		t.Errorf("expected no error closing nil resolver, got %v", err)
	}
}
