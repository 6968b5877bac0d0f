package engine

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/grammar"
	"github.com/vk/incanto/internal/result"
)

// op is one pending operation on a thread's continuation stack.
type op interface {
	op()
}

// opNode is a grammar node awaiting expansion.
type opNode struct {
	n grammar.Node
}

// opLit is a literal match in progress. runes is the literal's text,
// decoded once at expansion and shared by all forks; pos is the next rune
// to match.
type opLit struct {
	lit   *grammar.Literal
	runes []rune
	pos   int
}

// opText is a free-text consumption in progress. buf holds the runes
// consumed so far; it is copied on every extension so forks never alias.
type opText struct {
	ft  *grammar.FreeText
	buf []rune
}

// opEmit appends a trace event when it reaches the head of the
// continuation. Close markers for sequence and argument scopes travel the
// stack this way so they fire exactly when the scope's children are done.
type opEmit struct {
	ev result.Event
}

func (opNode) op() {}
func (opLit) op()  {}
func (opText) op() {}
func (opEmit) op() {}

// frame is a node of the persistent continuation stack. A nil *frame is the
// empty continuation.
type frame struct {
	op   op
	next *frame
}

func push(f *frame, o op) *frame {
	return &frame{op: o, next: f}
}

// traceNode is a node of the persistent, reverse-ordered trace list.
type traceNode struct {
	ev   result.Event
	prev *traceNode
}

// Thread is one live candidate interpretation within a session: the
// remaining continuation, the accumulated result fragments, the number of
// runes consumed, and the category of the last consumed rune. Threads are
// immutable; all stepping produces new Thread values.
type Thread struct {
	cont         *frame
	trace        *traceNode
	consumed     int
	lastCategory string
}

// Seed creates the single root thread for a session, with the whole grammar
// tree pending and nothing consumed.
func Seed(root grammar.Node) Thread {
	if root == nil {
		panic("engine: seed root must not be nil")
	}
	return Thread{cont: &frame{op: opNode{n: root}}}
}

// Completed reports whether the continuation has emptied. Combined with the
// session having fed all input, this makes the thread a completed
// derivation.
func (t Thread) Completed() bool {
	return t.cont == nil
}

// Consumed returns the number of runes this thread has consumed.
func (t Thread) Consumed() int {
	return t.consumed
}

// LastCategory returns the category of the most recently consumed rune.
func (t Thread) LastCategory() string {
	return t.lastCategory
}

// Events returns the thread's trace in traversal order, ready for the
// result synthesizer.
func (t Thread) Events() []result.Event {
	var n int
	for node := t.trace; node != nil; node = node.prev {
		n++
	}
	events := make([]result.Event, n)
	for node := t.trace; node != nil; node = node.prev {
		n--
		events[n] = node.ev
	}
	return events
}

// NextLiteral returns the literal pending at the thread's head along with
// the number of its runes already matched. It reports false when the head
// is not a literal position.
func (t Thread) NextLiteral() (lit *grammar.Literal, matched int, ok bool) {
	if t.cont == nil {
		return nil, 0, false
	}
	o, isLit := t.cont.op.(opLit)
	if !isLit {
		return nil, 0, false
	}
	return o.lit, o.pos, true
}

// NextFreeText returns the free-text node pending at the thread's head. It
// reports false when the head is not a free-text position.
func (t Thread) NextFreeText() (*grammar.FreeText, bool) {
	if t.cont == nil {
		return nil, false
	}
	o, isText := t.cont.op.(opText)
	if !isText {
		return nil, false
	}
	return o.ft, true
}

// withEvent returns a copy of the thread with one more trace event.
func (t Thread) withEvent(ev result.Event) Thread {
	t.trace = &traceNode{ev: ev, prev: t.trace}
	return t
}

// literalValueEvent wraps a literal's configured contribution as a trace
// event, emitted when the literal's final rune is consumed.
func literalValueEvent(v cty.Value) result.Event {
	return result.Event{Kind: result.EventValue, Value: v, HasValue: true}
}
