// Package media turns user supplied video URLs into references and maps the
// path-embedded play and download routes back onto them.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SampleURL is offered on the home page as a ready-made reference.
const SampleURL = "https://content.jwplatform.com/videos/bkaovAYt-injeKYZS.mp4"

var (
	ErrEmptyReference   = errors.New("media: empty reference")
	ErrInvalidReference = errors.New("media: invalid reference")
)

// Reference identifies remote video content. The zero value is empty.
type Reference struct {
	raw string
}

// NewReference trims surrounding whitespace and rejects empty input.
func NewReference(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, ErrEmptyReference
	}
	return Reference{raw: raw}, nil
}

func (r Reference) String() string { return r.raw }

func (r Reference) IsZero() bool { return r.raw == "" }

// Target parses the reference as an absolute URI usable as a redirect
// location. Only http, https and s3 schemes are accepted.
func (r Reference) Target() (*url.URL, error) {
	u, err := url.Parse(r.raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "s3":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidReference, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidReference)
	}
	return u, nil
}

// componentFixups undoes the escapes url.QueryEscape applies to characters
// encodeURIComponent leaves alone, and spells spaces as %20.
var componentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Encode percent-encodes s the way browsers encode a URI component, so links
// built here match the ones built by the client.
func Encode(s string) string {
	return componentFixups.Replace(url.QueryEscape(s))
}

// Decode reverses Encode. A literal '+' stays a '+'.
func Decode(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return decoded, nil
}
