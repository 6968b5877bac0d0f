// Package dispatch hands completed derivations to an external executor.
// The parsing core never performs side effects itself; executing a command
// is entirely the executor's responsibility.
package dispatch
