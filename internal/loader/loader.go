// Package loader acquires an external resource from an ordered list of
// candidate locations, trying them strictly one after another.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrNoCandidates = errors.New("loader: no candidates")
	ErrExhausted    = errors.New("loader: all candidates failed")
)

// Attachment is one injected resource reference. Remove detaches it from the
// shared document state.
type Attachment interface {
	Remove()
}

// Injector attaches src and blocks until it has loaded or failed. On failure
// the returned Attachment, when non-nil, is still attached and must be removed
// by the caller.
type Injector interface {
	Inject(ctx context.Context, src string) (Attachment, error)
}

// Attempt records the outcome of one candidate.
type Attempt struct {
	Source string
	Err    error
}

// Result describes a successful load.
type Result struct {
	Source   string
	Attempts []Attempt
}

// ExhaustedError is returned when every candidate failed. It wraps ErrExhausted.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("loader: all %d candidates failed", len(e.Attempts))
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }

type Loader struct {
	injector Injector
	logger   *slog.Logger
}

func New(injector Injector, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{injector: injector, logger: logger}
}

// Load tries candidates in order and stops at the first success. Each failed
// attachment is removed before the next candidate is tried. Cancelling ctx
// stops the sequence between attempts.
func (l *Loader) Load(ctx context.Context, candidates []string) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrNoCandidates
	}

	attempts := make([]Attempt, 0, len(candidates))
	for _, src := range candidates {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: attempts}, fmt.Errorf("loader: cancelled before %s: %w", src, err)
		}

		attachment, err := l.injector.Inject(ctx, src)
		if err == nil {
			attempts = append(attempts, Attempt{Source: src})
			l.logger.Info("loader: resource loaded", "source", src, "attempt", len(attempts))
			return Result{Source: src, Attempts: attempts}, nil
		}

		if attachment != nil {
			attachment.Remove()
		}
		attempts = append(attempts, Attempt{Source: src, Err: err})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{Attempts: attempts}, fmt.Errorf("loader: cancelled during %s: %w", src, ctxErr)
		}
		l.logger.Warn("loader: resource failed", "source", src, "attempt", len(attempts), "error", err)
	}

	return Result{Attempts: attempts}, &ExhaustedError{Attempts: attempts}
}
