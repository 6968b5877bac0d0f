// Package engine advances a set of live derivation threads over input, one
// rune at a time, against an extension-aware grammar tree.
//
// A thread is an immutable snapshot: a continuation stack of pending
// operations plus the trace of result fragments recorded so far. Stepping
// never mutates a thread; forks share structure with their parent, so a
// whole thread set is safely discardable at any point and sessions may be
// abandoned between steps without cleanup.
//
// Each step has two halves. Settle expands every thread until its head is a
// consuming position — a literal mid-match or a free-text slot — running
// choice and phrase forks, immediate dynamic evaluations, and trace marker
// emission along the way. Consume then feeds one rune to every settled
// thread, pruning the ones that cannot accept it. A thread whose
// continuation empties is a completed derivation; with input left over it is
// pruned on the next rune instead.
//
// Fork order is fixed: choice alternatives fork in declaration order, and a
// phrase's own generated tree forks before its extensions, which fork in
// registration order. Completed derivations are reported in this order and
// are never deduplicated here.
//
// Grammar recursion that does not consume at least one rune per recursive
// phrase instantiation is an undetected configuration hazard; authors must
// guarantee progress on every recursive path.
package engine
