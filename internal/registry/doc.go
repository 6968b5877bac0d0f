// Package registry provides the process-wide phrase catalog and extension
// table.
//
// The Registry maps phrase identities to their tree generators and records
// which identities extend which targets. Add-ons populate it at load time;
// parse sessions take an immutable Snapshot at start, so mid-session
// registration never affects in-flight derivations — only future sessions.
//
// Extension resolution is deliberately non-transitive: if B extends A and C
// extends B, C is never offered where A appears. That bounds resolution to
// one lookup per phrase node and makes extension cycles harmless.
package registry
