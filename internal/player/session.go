package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/playrelay/playrelay/internal/loader"
	"github.com/playrelay/playrelay/internal/media"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Document is the part of the page the session touches besides the player.
type Document interface {
	AttachStylesheet(href string)
	// PurgeScripts removes every script whose src contains one of patterns
	// and reports how many were removed.
	PurgeScripts(patterns ...string) int
}

// KeyBinder installs a global key handler. The handler reports whether it
// consumed the key. The returned func removes the handler.
type KeyBinder interface {
	Bind(handler func(key string) bool) (unbind func())
}

type Config struct {
	Ref        media.Reference
	Container  string
	Candidates []string
	Stylesheet string
	LicenseKey string

	Capability *Capability
	Loader     *loader.Loader
	Document   Document
	Keys       KeyBinder
	Prefs      PreferenceStore
	Logger     *slog.Logger

	// OnChange is called after every state change, outside the session lock.
	OnChange func(state State, err error)
}

var (
	skipBackButton = Button{
		ID:      "skip-back-10",
		Tooltip: "Skip Back 10s",
		Icon:    `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="currentColor"><path d="M11.99 5V1l-5 5 5 5V7c3.31 0 6 2.69 6 6s-2.69 6-6 6-6-2.69-6-6h-2c0 4.42 3.58 8 8 8s8-3.58 8-8-3.58-8-8-8z"/></svg>`,
	}
	skipForwardButton = Button{
		ID:      "skip-forward-10",
		Tooltip: "Skip Forward 10s",
		Icon:    `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="currentColor"><path d="M12 5V1l5 5-5 5V7c-3.31 0-6 2.69-6 6s2.69 6 6 6 6-2.69 6-6h2c0 4.42-3.58 8-8 8s-8-3.58-8-8 3.58-8 8-8z"/></svg>`,
	}
)

// Session owns at most one external player instance bound to one media
// reference.
type Session struct {
	cfg Config
	log *slog.Logger

	mu         sync.Mutex
	state      State
	err        error
	instance   Instance
	unbind     func()
	cancel     context.CancelFunc
	generation int
	started    bool
	disposed   bool
}

func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{cfg: cfg, log: logger.With("media", cfg.Ref.String())}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error that moved the session to Errored, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start moves an idle session to Loading. It blocks while the library is
// fetched; readiness arrives later through the player's ready event.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true

	if s.cfg.Ref.IsZero() {
		gen := s.generation
		s.mu.Unlock()
		return s.fail(gen, &Error{Kind: MissingReference, Message: media.NoReferenceMessage, Err: media.ErrNoReference})
	}
	s.mu.Unlock()

	return s.load(ctx)
}

// Retry releases the current instance, forgets the loaded library and loads
// everything again in place.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	if s.state != Errored {
		s.mu.Unlock()
		return ErrNotErrored
	}
	s.unbindLocked()
	s.releaseLocked("retry")
	s.mu.Unlock()

	if s.cfg.Ref.IsZero() {
		s.mu.Lock()
		gen := s.generation
		s.mu.Unlock()
		return s.fail(gen, &Error{Kind: MissingReference, Message: media.NoReferenceMessage, Err: media.ErrNoReference})
	}

	if s.cfg.Document != nil {
		if n := s.cfg.Document.PurgeScripts(LibraryScriptPatterns...); n > 0 {
			s.log.Debug("player: purged library scripts", "count", n)
		}
	}
	s.cfg.Capability.Reset()
	return s.load(ctx)
}

// Dispatch runs cmd against the live instance. It reports false when the
// session is not ready.
func (s *Session) Dispatch(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready || s.instance == nil {
		return false
	}
	Apply(s.instance, cmd)
	return true
}

// Dispose tears the session down: an in-flight load is cancelled, key
// bindings are removed and the instance is released without waiting.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.unbindLocked()
	s.releaseLocked("dispose")
	s.state = Idle
}

func (s *Session) load(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	s.generation++
	gen := s.generation
	loadCtx, cancel := context.WithCancel(ctx)
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	notify := s.setStateLocked(Loading, nil)
	s.mu.Unlock()
	notify()

	lib, ok := s.cfg.Capability.Library()
	if !ok {
		if s.cfg.Stylesheet != "" && s.cfg.Document != nil {
			s.cfg.Document.AttachStylesheet(s.cfg.Stylesheet)
		}
		res, err := s.cfg.Loader.Load(loadCtx, s.cfg.Candidates)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return s.fail(gen, &Error{Kind: ResourceLoadExhausted, Message: MsgExhausted, Err: err})
		}
		s.log.Info("player: library loaded", "source", res.Source, "attempts", len(res.Attempts))

		lib, ok = s.cfg.Capability.Library()
		if !ok {
			return s.fail(gen, &Error{Kind: InitializationFailure, Message: MsgInit, Err: fmt.Errorf("library not registered after loading %s", res.Source)})
		}
	}

	return s.initialize(gen, lib)
}

func (s *Session) initialize(gen int, lib Library) (err error) {
	s.mu.Lock()
	if gen != s.generation || s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup panicked: %v", r)
		}
		if err != nil {
			s.mu.Unlock()
			err = s.fail(gen, &Error{Kind: InitializationFailure, Message: MsgInit, Err: err})
			return
		}
		s.mu.Unlock()
	}()

	if s.cfg.LicenseKey != "" {
		lib.SetKey(s.cfg.LicenseKey)
	}
	setup := NewSetup(s.cfg.Ref, LoadStretching(s.cfg.Prefs))
	inst, err := lib.Setup(s.cfg.Container, setup)
	if err != nil {
		return err
	}
	s.instance = inst

	inst.On(EventReady, func(EventData) { s.handleReady(gen) })
	inst.On(EventError, func(d EventData) { s.handleRuntimeError(gen, d.Message) })
	inst.On(EventBuffer, func(EventData) { s.log.Debug("player: buffering") })
	inst.On(EventBufferFull, func(EventData) { s.log.Debug("player: buffer full") })
	s.log.Info("player: instance configured", "stretching", setup.Stretching)
	return nil
}

func (s *Session) handleReady(gen int) {
	s.mu.Lock()
	if gen != s.generation || s.state != Loading || s.instance == nil {
		s.mu.Unlock()
		return
	}

	back := skipBackButton
	back.OnClick = func() { s.Dispatch(SeekBackward) }
	forward := skipForwardButton
	forward.OnClick = func() { s.Dispatch(SeekForward) }
	s.instance.AddButton(back)
	s.instance.AddButton(forward)

	if s.cfg.Keys != nil {
		s.unbind = s.cfg.Keys.Bind(s.handleKey)
	}
	notify := s.setStateLocked(Ready, nil)
	s.mu.Unlock()

	s.log.Info("player: ready")
	notify()
}

func (s *Session) handleRuntimeError(gen int, message string) {
	if message == "" {
		message = MsgPlayback
	}
	s.log.Error("player: playback error", "message", message)
	s.fail(gen, &Error{Kind: RuntimePlaybackError, Message: message})
}

func (s *Session) handleKey(key string) bool {
	cmd, ok := KeyCommand(key)
	if !ok {
		return false
	}
	return s.Dispatch(cmd)
}

// fail moves the session to Errored unless gen is stale. It always returns e.
func (s *Session) fail(gen int, e *Error) error {
	s.mu.Lock()
	if gen != s.generation || s.disposed {
		s.mu.Unlock()
		return e
	}
	s.unbindLocked()
	notify := s.setStateLocked(Errored, e)
	s.mu.Unlock()

	notify()
	return e
}

func (s *Session) setStateLocked(state State, err error) func() {
	s.state = state
	s.err = err
	cb := s.cfg.OnChange
	if cb == nil {
		return func() {}
	}
	return func() { cb(state, err) }
}

func (s *Session) unbindLocked() {
	if s.unbind != nil {
		s.unbind()
		s.unbind = nil
	}
}

// releaseLocked removes the instance. Failures are logged, never returned.
func (s *Session) releaseLocked(reason string) {
	inst := s.instance
	s.instance = nil
	if inst == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("player: release panicked", "reason", reason, "panic", r)
		}
	}()
	if err := inst.Remove(); err != nil {
		s.log.Error("player: failed to release instance", "reason", reason, "error", err)
	}
}
