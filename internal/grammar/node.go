package grammar

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/dynctx"
)

// ErrNoMatch is returned by a Dynamic node's eval function to signal that
// the node has no value under the current context. The owning derivation
// thread is pruned silently; this is an expected outcome, not a fault.
var ErrNoMatch = errors.New("dynamic value: no match")

// Node is a grammar tree node. The set of implementations is closed; the
// derivation engine switches over the concrete types.
type Node interface {
	node()
}

// EvalFunc produces a Dynamic node's value from the read-only evaluation
// context. It must be deterministic for a given context snapshot. Returning
// ErrNoMatch (or any error) prunes the evaluating thread; a panic is
// recovered by the engine and treated the same way.
type EvalFunc func(ctx *dynctx.Context) (cty.Value, error)

// GenerateFunc lazily produces a Phrase's subtree from the evaluation
// context. It is invoked once per thread instantiation of the phrase, never
// memoized globally, and must be deterministic for a given context snapshot.
type GenerateFunc func(ctx *dynctx.Context) Node

// Literal matches a fixed run of text, rune by rune, under Unicode simple
// case folding. Category classifies the consumed text for suggestion UIs
// (for example "verb" or "noun"). An optional configured value contributes
// to the folded result; by default a literal contributes nothing.
type Literal struct {
	Text     string
	Category string
	value    cty.Value
	hasValue bool
}

func (*Literal) node() {}

// NewLiteral builds a literal matcher. It panics if text is empty.
func NewLiteral(text, category string) *Literal {
	if text == "" {
		panic("grammar: literal text must not be empty")
	}
	return &Literal{Text: text, Category: category}
}

// WithValue returns a copy of the literal that contributes v to the folded
// result when traversed.
func (l *Literal) WithValue(v cty.Value) *Literal {
	dup := *l
	dup.value = v
	dup.hasValue = true
	return &dup
}

// Value returns the literal's configured contribution, if any.
func (l *Literal) Value() (cty.Value, bool) {
	return l.value, l.hasValue
}

// Dynamic yields a value derived from session state without consuming any
// input: clipboard contents, the session timestamp, a prior network lookup.
// Name identifies the node in logs when its evaluation faults.
type Dynamic struct {
	Name     string
	Category string
	Eval     EvalFunc
}

func (*Dynamic) node() {}

// NewDynamic builds a state-derived value node. It panics if eval is nil or
// name is empty.
func NewDynamic(name, category string, eval EvalFunc) *Dynamic {
	if name == "" {
		panic("grammar: dynamic node name must not be empty")
	}
	if eval == nil {
		panic(fmt.Sprintf("grammar: dynamic node %q has nil eval function", name))
	}
	return &Dynamic{Name: name, Category: category, Eval: eval}
}

// FreeText consumes input generically, contributing exactly the consumed
// text as a string value. MinLen is the fewest runes the node must consume
// before the derivation may move past it; MaxLen caps consumption, with 0
// meaning unbounded. A thread that would exceed MaxLen dies silently.
type FreeText struct {
	Category string
	MinLen   int
	MaxLen   int
}

func (*FreeText) node() {}

// NewFreeText builds a bounded free-text consumer. It panics on negative or
// inverted bounds.
func NewFreeText(category string, minLen, maxLen int) *FreeText {
	if minLen < 0 {
		panic("grammar: free text minimum length must not be negative")
	}
	if maxLen < 0 {
		panic("grammar: free text maximum length must not be negative")
	}
	if maxLen > 0 && minLen > maxLen {
		panic(fmt.Sprintf("grammar: free text bounds inverted (min %d > max %d)", minLen, maxLen))
	}
	return &FreeText{Category: category, MinLen: minLen, MaxLen: maxLen}
}

// Child is one slot of a Sequence. A non-empty Key routes the child's
// contribution into the sequence's folded mapping; an unkeyed child still
// participates in matching but contributes nothing to the result.
type Child struct {
	Key  string
	Node Node
}

// Keyed wraps a node as a keyed sequence child.
func Keyed(key string, n Node) Child {
	if key == "" {
		panic("grammar: keyed sequence child requires a non-empty key")
	}
	return Child{Key: key, Node: n}
}

// Pos wraps a node as a positional (unkeyed) sequence child.
func Pos(n Node) Child {
	return Child{Node: n}
}

// Sequence matches its children in order. Keyed children's contributions
// merge into one ordered mapping in declaration order, later duplicate keys
// overwriting earlier ones.
type Sequence struct {
	Children []Child
}

func (*Sequence) node() {}

// NewSequence builds an ordered sequence. It panics when given no children
// or any nil child node.
func NewSequence(children ...Child) *Sequence {
	if len(children) == 0 {
		panic("grammar: sequence requires at least one child")
	}
	for i, c := range children {
		if c.Node == nil {
			panic(fmt.Sprintf("grammar: sequence child %d is nil", i))
		}
	}
	return &Sequence{Children: children}
}

// Choice forks one derivation thread per alternative, in declaration order.
// An alternative that can never reach a consuming leaf is not an error — it
// simply starves.
type Choice struct {
	Alternatives []Node
}

func (*Choice) node() {}

// NewChoice builds an alternation. It panics when given no alternatives or
// any nil alternative.
func NewChoice(alts ...Node) *Choice {
	if len(alts) == 0 {
		panic("grammar: choice requires at least one alternative")
	}
	for i, a := range alts {
		if a == nil {
			panic(fmt.Sprintf("grammar: choice alternative %d is nil", i))
		}
	}
	return &Choice{Alternatives: alts}
}

// Argument keys its child's contribution in the folded result.
type Argument struct {
	Key   string
	Child Node
}

func (*Argument) node() {}

// NewArgument builds a keyed wrapper. It panics on an empty key or nil child.
func NewArgument(key string, child Node) *Argument {
	if key == "" {
		panic("grammar: argument key must not be empty")
	}
	if child == nil {
		panic(fmt.Sprintf("grammar: argument %q has nil child", key))
	}
	return &Argument{Key: key, Child: child}
}

// Phrase names a composable grammar unit. Its tree is produced by Generate
// per thread instantiation; when Generate is nil the engine resolves the
// generator from the session's registry snapshot by Identity. Extensions
// registered for Identity are offered alongside the phrase's own tree.
type Phrase struct {
	Identity string
	Generate GenerateFunc
}

func (*Phrase) node() {}

// NewPhrase builds a phrase with an inline generator. It panics on an empty
// identity or nil generator.
func NewPhrase(identity string, gen GenerateFunc) *Phrase {
	if identity == "" {
		panic("grammar: phrase identity must not be empty")
	}
	if gen == nil {
		panic(fmt.Sprintf("grammar: phrase %q has nil generator; use NewPhraseRef for registry-resolved phrases", identity))
	}
	return &Phrase{Identity: identity, Generate: gen}
}

// NewPhraseRef builds a phrase resolved from the registry at derivation
// time. It panics on an empty identity.
func NewPhraseRef(identity string) *Phrase {
	if identity == "" {
		panic("grammar: phrase identity must not be empty")
	}
	return &Phrase{Identity: identity}
}

// Static adapts an already-built tree into a GenerateFunc for phrases whose
// structure does not depend on the evaluation context.
func Static(n Node) GenerateFunc {
	if n == nil {
		panic("grammar: static phrase tree must not be nil")
	}
	return func(*dynctx.Context) Node { return n }
}
