package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/dynctx"
	"github.com/vk/incanto/internal/grammar"
	"github.com/vk/incanto/internal/registry"
	"github.com/vk/incanto/internal/result"
)

// Deps bundles the per-session collaborators the engine consults while
// expanding threads: the registry snapshot for extension resolution and the
// evaluation context for dynamic nodes and phrase generators.
type Deps struct {
	Snapshot *registry.Snapshot
	Context  *dynctx.Context
}

// Settle expands every thread until its head is a consuming position or its
// continuation is empty. Output order is fork order: threads keep their
// relative order, and forks of one thread appear consecutively, choice
// alternatives in declaration order, a phrase's own tree before its
// extensions.
func Settle(ctx context.Context, threads []Thread, deps Deps) []Thread {
	logger := ctxlog.FromContext(ctx)
	out := make([]Thread, 0, len(threads))
	for _, t := range threads {
		settleOne(logger, t, deps, &out)
	}
	return out
}

// settleOne drives a single thread to its consuming positions, appending
// every settled fork to out in fork order.
func settleOne(logger *slog.Logger, t Thread, deps Deps, out *[]Thread) {
	for {
		if t.cont == nil {
			*out = append(*out, t)
			return
		}
		switch o := t.cont.op.(type) {
		case opEmit:
			t = t.withEvent(o.ev)
			t.cont = t.cont.next

		case opLit:
			// Mid-literal: a consuming position.
			*out = append(*out, t)
			return

		case opText:
			// A free-text slot forks: keep consuming while under the cap,
			// and close the slot once the minimum is met. The consuming
			// branch settles first so a slot's own continuation outranks
			// whatever follows it.
			if o.ft.MaxLen == 0 || len(o.buf) < o.ft.MaxLen {
				*out = append(*out, t)
			}
			if len(o.buf) >= o.ft.MinLen {
				done := t.withEvent(result.Event{
					Kind:     result.EventValue,
					Value:    cty.StringVal(string(o.buf)),
					HasValue: true,
				})
				done.cont = t.cont.next
				settleOne(logger, done, deps, out)
			}
			return

		case opNode:
			switch n := o.n.(type) {
			case *grammar.Literal:
				t.cont = push(t.cont.next, opLit{lit: n, runes: []rune(n.Text)})

			case *grammar.FreeText:
				t.cont = push(t.cont.next, opText{ft: n})

			case *grammar.Dynamic:
				v, err := safeEval(n, deps.Context)
				if err != nil {
					// A failed or faulting evaluation prunes only this
					// thread; siblings continue untouched.
					if errors.Is(err, grammar.ErrNoMatch) {
						logger.Debug("Dynamic node yielded no match.", "node", n.Name)
					} else {
						logger.Warn("Dynamic node evaluation failed.", "node", n.Name, "error", err)
					}
					return
				}
				t = t.withEvent(result.Event{Kind: result.EventValue, Value: v, HasValue: true})
				t.cont = t.cont.next

			case *grammar.Sequence:
				t = t.withEvent(result.Event{Kind: result.EventBeginSequence})
				rest := push(t.cont.next, opEmit{ev: result.Event{Kind: result.EventEndSequence}})
				for i := len(n.Children) - 1; i >= 0; i-- {
					c := n.Children[i]
					if c.Key != "" {
						rest = push(rest, opEmit{ev: result.Event{Kind: result.EventEndArgument}})
						rest = push(rest, opNode{n: c.Node})
						rest = push(rest, opEmit{ev: result.Event{Kind: result.EventBeginArgument, Key: c.Key}})
					} else {
						rest = push(rest, opNode{n: c.Node})
					}
				}
				t.cont = rest

			case *grammar.Argument:
				t = t.withEvent(result.Event{Kind: result.EventBeginArgument, Key: n.Key})
				rest := push(t.cont.next, opEmit{ev: result.Event{Kind: result.EventEndArgument}})
				t.cont = push(rest, opNode{n: n.Child})

			case *grammar.Choice:
				rest := t.cont.next
				for _, alt := range n.Alternatives {
					fork := t
					fork.cont = push(rest, opNode{n: alt})
					settleOne(logger, fork, deps, out)
				}
				return

			case *grammar.Phrase:
				t = t.withEvent(result.Event{Kind: result.EventPhrase, Identity: n.Identity})
				rest := t.cont.next
				for _, gen := range phraseGenerators(logger, n, deps.Snapshot) {
					tree := safeGenerate(logger, gen.identity, gen.fn, deps.Context)
					if tree == nil {
						continue
					}
					fork := t
					fork.cont = push(rest, opNode{n: tree})
					settleOne(logger, fork, deps, out)
				}
				return

			default:
				panic(fmt.Sprintf("engine: unknown grammar node type %T", n))
			}

		default:
			panic(fmt.Sprintf("engine: unknown continuation op %T", o))
		}
	}
}

type namedGenerator struct {
	identity string
	fn       grammar.GenerateFunc
}

// phraseGenerators resolves the fork list for a phrase: its own generator
// first, then one generator per registered extension in registration order.
// Extensions are consulted through their own generators — the target node
// is never rewritten.
func phraseGenerators(logger *slog.Logger, p *grammar.Phrase, snap *registry.Snapshot) []namedGenerator {
	var gens []namedGenerator
	own := p.Generate
	if own == nil && snap != nil {
		own, _ = snap.Generator(p.Identity)
	}
	if own != nil {
		gens = append(gens, namedGenerator{identity: p.Identity, fn: own})
	} else {
		logger.Warn("Phrase has no generator and no registry entry; branch starves.", "identity", p.Identity)
	}
	if snap == nil {
		return gens
	}
	for _, extID := range snap.Resolve(p.Identity) {
		fn, ok := snap.Generator(extID)
		if !ok {
			// Validate catches this at startup; tolerate it here anyway.
			logger.Warn("Extension names an unregistered phrase; skipping.", "target", p.Identity, "extension", extID)
			continue
		}
		gens = append(gens, namedGenerator{identity: extID, fn: fn})
	}
	return gens
}

// safeEval runs a dynamic node's eval function, converting a panic into an
// error so one malfunctioning node degrades to a pruned thread instead of
// aborting the session.
func safeEval(n *grammar.Dynamic, ectx *dynctx.Context) (v cty.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dynamic node %q panicked: %v", n.Name, r)
		}
	}()
	return n.Eval(ectx)
}

// safeGenerate runs a phrase generator, returning nil (a starved fork) on
// panic or a nil tree.
func safeGenerate(logger *slog.Logger, identity string, gen grammar.GenerateFunc, ectx *dynctx.Context) (tree grammar.Node) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Phrase generator panicked; branch starves.", "identity", identity, "panic", r)
			tree = nil
		}
	}()
	tree = gen(ectx)
	if tree == nil {
		logger.Warn("Phrase generator returned nil tree; branch starves.", "identity", identity)
	}
	return tree
}
