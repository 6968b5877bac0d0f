package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/dynctx"
	"github.com/vk/incanto/internal/engine"
	"github.com/vk/incanto/internal/grammar"
	"github.com/vk/incanto/internal/registry"
	"github.com/vk/incanto/internal/result"
	"github.com/vk/incanto/internal/suggest"
)

// ErrEnded is returned by Advance after End has been called.
var ErrEnded = errors.New("session: already ended")

// Result is one completed derivation: the identity of the top-level phrase
// that produced it, the exact text consumed, and the synthesized value.
type Result struct {
	Command string
	Text    string
	Value   result.Value
}

// Step is the outcome of one Advance call.
type Step struct {
	// Completed lists completed derivations for the input so far, in fork
	// order. Identical derivations are not deduplicated; ranking is an
	// external concern.
	Completed []Result
	// Candidates lists legal continuations of the current input.
	Candidates []suggest.Candidate
	// Complete is true when the input can be submitted as-is.
	Complete bool
	// Alive is false once no thread can accept any further input.
	Alive bool
}

// Session is one incremental parse. Create with New, feed with Advance,
// discard with End.
type Session struct {
	root    grammar.Node
	deps    engine.Deps
	threads []engine.Thread
	input   []rune
	dead    error
}

// New starts a session: it validates and snapshots the registry, seeds the
// root thread, and settles initial continuations so suggestions are
// available before anything is typed. Configuration errors surface here,
// never during parsing.
func New(ctx context.Context, root grammar.Node, reg *registry.Registry, ectx *dynctx.Context) (*Session, error) {
	if root == nil {
		return nil, fmt.Errorf("session: root grammar node must not be nil")
	}
	if ectx == nil {
		ectx = dynctx.NewBuilder().Build()
	}
	var snap *registry.Snapshot
	if reg != nil {
		if err := reg.Validate(); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		snap = reg.Snapshot()
	}

	s := &Session{
		root: root,
		deps: engine.Deps{Snapshot: snap, Context: ectx},
	}
	err := s.guarded(ctx, func(ctx context.Context) {
		s.threads = engine.Settle(ctx, []engine.Thread{engine.Seed(root)}, s.deps)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Advance appends chunk to the session's input, consuming it rune by rune,
// and reports the resulting completed derivations and candidates. An empty
// chunk reports the current state without consuming anything. Feeding input
// one rune per call yields the same completed-result sets as feeding it all
// at once.
func (s *Session) Advance(ctx context.Context, chunk string) (*Step, error) {
	if s.dead != nil {
		return nil, s.dead
	}
	err := s.guarded(ctx, func(ctx context.Context) {
		s.threads = engine.Advance(ctx, s.threads, chunk, s.deps)
		s.input = append(s.input, []rune(chunk)...)
	})
	if err != nil {
		return nil, err
	}
	return s.describe(ctx)
}

// Input returns the input consumed so far.
func (s *Session) Input() string {
	return string(s.input)
}

// End discards the session. Pending thread state is dropped wholesale; no
// step is ever half-applied, so ending between steps needs no cleanup.
func (s *Session) End() {
	s.threads = nil
	if s.dead == nil {
		s.dead = ErrEnded
	}
}

// describe synthesizes completed threads and gathers candidates from the
// rest.
func (s *Session) describe(ctx context.Context) (*Step, error) {
	logger := ctxlog.FromContext(ctx)
	step := &Step{Alive: len(s.threads) > 0}

	for _, t := range s.threads {
		if !t.Completed() {
			continue
		}
		events := t.Events()
		value, err := result.Synthesize(events)
		if err != nil {
			// A trace the synthesizer cannot fold means this session's
			// state is corrupt; kill the session, not the process.
			s.dead = fmt.Errorf("session: corrupted derivation state: %w", err)
			return nil, s.dead
		}
		step.Completed = append(step.Completed, Result{
			Command: result.CommandIdentity(events),
			Text:    string(s.input),
			Value:   value,
		})
	}

	rep := suggest.Describe(s.threads)
	step.Candidates = rep.Candidates
	step.Complete = rep.Complete
	logger.Debug("Session step described.",
		"input_len", len(s.input),
		"threads", len(s.threads),
		"completed", len(step.Completed),
		"candidates", len(step.Candidates),
	)
	return step, nil
}

// guarded runs one engine step, converting an engine panic into a fatal
// error for this session only. Concurrent sessions are unaffected.
func (s *Session) guarded(ctx context.Context, fn func(ctx context.Context)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.dead = fmt.Errorf("session: internal invariant violated: %v", r)
			err = s.dead
		}
	}()
	fn(ctx)
	return nil
}
