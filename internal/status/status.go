// Package status provides the cancellation token the despeckle engine
// polls at every stage boundary. It is the idiomatic-Go rendering of a
// poll-at-checkpoints cancellation token: a thin wrapper around
// context.Context, threaded the way the teacher threads context.Context
// through its processing layers (internal/algorithms/otsu.ProcessWithContext).
package status

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled is returned by Check once the wrapped context is done.
// Callers distinguish it from ordinary failures with errors.Is.
var ErrCancelled = errors.New("despeckle: operation cancelled")

// Token wraps a context.Context for cooperative cancellation checks.
type Token struct {
	ctx context.Context
}

// New returns a Token bound to ctx. A nil context is a programmer error.
func New(ctx context.Context) Token {
	if ctx == nil {
		panic("status: nil context")
	}
	return Token{ctx: ctx}
}

// Check returns ErrCancelled if the token's context has been cancelled or
// has exceeded its deadline, nil otherwise. It never blocks.
func (t Token) Check() error {
	select {
	case <-t.ctx.Done():
		if cause := context.Cause(t.ctx); cause != nil && cause != context.Canceled && cause != context.DeadlineExceeded {
			return fmt.Errorf("%w: %v", ErrCancelled, cause)
		}
		return ErrCancelled
	default:
		return nil
	}
}

// Context returns the underlying context, for call sites that need to pass
// it along (e.g. to an I/O call) rather than just poll it.
func (t Token) Context() context.Context {
	return t.ctx
}
