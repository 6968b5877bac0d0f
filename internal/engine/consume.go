package engine

import (
	"context"
	"fmt"
	"unicode"

	"github.com/vk/incanto/internal/ctxlog"
)

// Consume feeds one rune to every settled thread, returning the survivors.
// Threads that cannot accept the rune — including already-completed threads,
// for which any further input is unconsumable — are pruned silently.
// Callers must pass a settled set; any other head is a corrupted
// continuation and panics, which the session layer converts into a fatal
// error for that session alone.
func Consume(ctx context.Context, threads []Thread, r rune) []Thread {
	logger := ctxlog.FromContext(ctx)
	out := make([]Thread, 0, len(threads))
	for _, t := range threads {
		if t.cont == nil {
			// Completed at a shorter input; dead now that more arrived.
			continue
		}
		switch o := t.cont.op.(type) {
		case opLit:
			if !runeFoldEqual(o.runes[o.pos], r) {
				continue
			}
			nt := t
			nt.consumed++
			nt.lastCategory = o.lit.Category
			if o.pos+1 == len(o.runes) {
				nt.cont = t.cont.next
				if v, ok := o.lit.Value(); ok {
					nt = nt.withEvent(literalValueEvent(v))
				}
			} else {
				nt.cont = push(t.cont.next, opLit{lit: o.lit, runes: o.runes, pos: o.pos + 1})
			}
			out = append(out, nt)

		case opText:
			// Settle only emits a consuming opText when under the cap.
			buf := make([]rune, len(o.buf)+1)
			copy(buf, o.buf)
			buf[len(o.buf)] = r
			nt := t
			nt.consumed++
			nt.lastCategory = o.ft.Category
			nt.cont = push(t.cont.next, opText{ft: o.ft, buf: buf})
			out = append(out, nt)

		default:
			panic(fmt.Sprintf("engine: consume reached unsettled continuation op %T", o))
		}
	}
	if len(out) == 0 {
		logger.Debug("All threads pruned on rune.", "rune", string(r))
	}
	return out
}

// Advance steps the thread set over every rune of chunk in order, settling
// after each rune. The input set must already be settled; the returned set
// is settled. Feeding a string rune by rune through repeated Advance calls
// yields exactly the same thread set as one call with the whole string.
func Advance(ctx context.Context, threads []Thread, chunk string, deps Deps) []Thread {
	for _, r := range chunk {
		threads = Consume(ctx, threads, r)
		threads = Settle(ctx, threads, deps)
	}
	return threads
}

// runeFoldEqual compares two runes under Unicode simple case folding, the
// engine's fixed literal-matching policy.
func runeFoldEqual(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}
