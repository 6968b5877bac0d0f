// Package session ties the engine, synthesizer, and candidate reporter into
// one evolving parse over a single piece of input, from empty to however far
// the user has typed.
//
// A session snapshots the extension registry and the evaluation context at
// start, so concurrent registration and external state changes only affect
// future sessions. Each Advance is a pure function of the prior thread set;
// abandoning a session between steps is always safe. Sessions are not safe
// for concurrent use by multiple goroutines, but distinct sessions parse
// fully independently and may run concurrently without locking.
package session
