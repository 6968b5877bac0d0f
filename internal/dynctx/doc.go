// Package dynctx provides the read-only evaluation context handed to
// dynamic grammar nodes and phrase generators.
//
// A Context is an immutable snapshot of external dynamic data — clipboard
// text, the session timestamp, and named lookup results contributed by
// provider modules — taken once at session start. The engine never mutates
// it, which is what makes phrase generation and dynamic evaluation
// deterministic for the lifetime of a session.
package dynctx
