package media

import (
	"errors"
	"fmt"
	"strings"
)

const (
	PlayPrefix  = "/Play/"
	DownPrefix  = "/Down/"
	DownloadAPI = "/api/download"
)

// ErrNoReference means the path carried no usable media reference.
var ErrNoReference = errors.New("media: no reference in path")

// NoReferenceMessage is shown to the user for ErrNoReference.
const NoReferenceMessage = "No video URL provided"

type Mode int

const (
	ModeNone Mode = iota
	ModePlay
	ModeDownload
)

func (m Mode) String() string {
	switch m {
	case ModePlay:
		return "play"
	case ModeDownload:
		return "download"
	default:
		return "none"
	}
}

// Intent is what a navigation to a route asks for.
type Intent struct {
	Mode Mode
	Ref  Reference
}

// Resolve maps an escaped request path onto an intent. The path must keep its
// original percent-encoding (url.URL.EscapedPath), otherwise encoded slashes
// inside the reference are already lost.
func Resolve(escapedPath string) (Intent, error) {
	var mode Mode
	var encoded string
	switch {
	case strings.HasPrefix(escapedPath, DownPrefix):
		mode, encoded = ModeDownload, escapedPath[len(DownPrefix):]
	case strings.HasPrefix(escapedPath, PlayPrefix):
		mode, encoded = ModePlay, escapedPath[len(PlayPrefix):]
	default:
		return Intent{}, ErrNoReference
	}

	decoded, err := Decode(encoded)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrNoReference, err)
	}
	ref, err := NewReference(decoded)
	if err != nil {
		return Intent{}, ErrNoReference
	}
	return Intent{Mode: mode, Ref: ref}, nil
}

func PlayPath(ref Reference) string {
	return PlayPrefix + Encode(ref.String())
}

func DownPath(ref Reference) string {
	return DownPrefix + Encode(ref.String())
}

// DownloadAPIPath is where a download intent sends the browser. The raw
// reference is encoded exactly once.
func DownloadAPIPath(ref Reference) string {
	return DownloadAPI + "?url=" + Encode(ref.String())
}
