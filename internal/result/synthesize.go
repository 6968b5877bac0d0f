package result

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// EventKind discriminates the entries of a derivation trace.
type EventKind int

const (
	// EventValue carries a leaf contribution: a literal's configured value,
	// a dynamic node's produced value, or free text as a string value.
	EventValue EventKind = iota
	// EventBeginSequence opens a sequence scope.
	EventBeginSequence
	// EventEndSequence closes the innermost sequence scope.
	EventEndSequence
	// EventBeginArgument opens a keyed argument scope.
	EventBeginArgument
	// EventEndArgument closes the innermost argument scope.
	EventEndArgument
	// EventPhrase marks entry into a phrase's generated tree. Phrases are
	// transparent to result shape; the marker exists so the execution
	// handoff can recover the identity of the command that completed.
	EventPhrase
)

// Event is one entry of the trace a thread records while deriving. The
// engine appends events in traversal order; Synthesize folds them.
type Event struct {
	Kind     EventKind
	Key      string    // argument key, for EventBeginArgument
	Identity string    // phrase identity, for EventPhrase
	Value    cty.Value // leaf value, for EventValue
	HasValue bool      // false for valueless literals
}

// CommandIdentity returns the identity of the outermost phrase traversed by
// the derivation, or "" when the grammar contains no phrase node.
func CommandIdentity(events []Event) string {
	for _, ev := range events {
		if ev.Kind == EventPhrase {
			return ev.Identity
		}
	}
	return ""
}

// Synthesize folds a completed derivation's trace bottom-up into a single
// Value. Sequence scopes merge the keyed contributions of their children in
// declaration order, later duplicate keys overwriting earlier ones; argument
// scopes wrap their child's contribution under the argument key; unkeyed
// leaf contributions inside a sequence are dropped. An unbalanced trace is
// an engine invariant violation and returns an error.
func Synthesize(events []Event) (Value, error) {
	type frame struct {
		isArg bool
		key   string
		// exactly one of these accumulates, depending on what the scope sees
		mapping *Mapping
		leaf    Value
		hasLeaf bool
	}

	var stack []*frame

	// deliver hands a finished contribution to the innermost open scope, or
	// makes it the root result when no scope is open.
	var root Value
	var hasRoot bool
	deliver := func(v Value) {
		if len(stack) == 0 {
			root = v
			hasRoot = true
			return
		}
		top := stack[len(stack)-1]
		if top.isArg {
			top.leaf = v
			top.hasLeaf = true
			return
		}
		// Sequence scope: only mapping contributions survive.
		if v.IsMapping() {
			if top.mapping == nil {
				top.mapping = NewMapping()
			}
			top.mapping.Merge(v.Mapping())
		}
	}

	for _, ev := range events {
		switch ev.Kind {
		case EventValue:
			if ev.HasValue {
				deliver(Primitive(ev.Value))
			}
		case EventBeginSequence:
			stack = append(stack, &frame{})
		case EventBeginArgument:
			stack = append(stack, &frame{isArg: true, key: ev.Key})
		case EventEndSequence, EventEndArgument:
			if len(stack) == 0 {
				return Value{}, fmt.Errorf("unbalanced derivation trace: close without open scope")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.isArg {
				if ev.Kind != EventEndArgument {
					return Value{}, fmt.Errorf("unbalanced derivation trace: sequence close inside argument scope")
				}
				m := NewMapping()
				m.Set(top.key, top.leaf)
				deliver(FromMapping(m))
				continue
			}
			if ev.Kind != EventEndSequence {
				return Value{}, fmt.Errorf("unbalanced derivation trace: argument close inside sequence scope")
			}
			if top.mapping == nil {
				top.mapping = NewMapping()
			}
			deliver(FromMapping(top.mapping))
		case EventPhrase:
			// Transparent to result shape.
		default:
			return Value{}, fmt.Errorf("unknown trace event kind %d", ev.Kind)
		}
	}
	if len(stack) != 0 {
		return Value{}, fmt.Errorf("unbalanced derivation trace: %d scopes left open", len(stack))
	}
	if !hasRoot {
		return Value{}, nil
	}
	return root, nil
}
