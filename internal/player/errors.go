package player

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	MissingReference ErrorKind = iota + 1
	ResourceLoadExhausted
	InitializationFailure
	RuntimePlaybackError
)

func (k ErrorKind) String() string {
	switch k {
	case MissingReference:
		return "missing-reference"
	case ResourceLoadExhausted:
		return "resource-load-exhausted"
	case InitializationFailure:
		return "initialization-failure"
	case RuntimePlaybackError:
		return "runtime-playback-error"
	default:
		return "unknown"
	}
}

const (
	MsgExhausted = "Failed to load JW Player from all available sources. This may be due to network restrictions, ad blockers, or browser security settings. Please check your network connection and browser extensions."
	MsgInit      = "Failed to initialize video player"
	MsgPlayback  = "Failed to load video. Please check the video URL and try again."
)

var (
	ErrNotErrored     = errors.New("player: session is not in the errored state")
	ErrAlreadyStarted = errors.New("player: session already started")
	ErrDisposed       = errors.New("player: session disposed")
)

// Error is the user-visible failure of a session.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("player: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("player: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }
