// Package grammar defines the typed vocabulary of grammar nodes that phrase
// authors compose into command trees.
//
// Leaves match or produce input: Literal matches fixed text, FreeText
// consumes arbitrary bounded text, and Dynamic yields a value from the
// evaluation context without consuming input. Combinators shape derivations
// and results: Sequence orders children (optionally keying each child's
// contribution), Choice forks one derivation per alternative, Argument keys
// a single child's contribution, and Phrase names a subtree generated
// lazily from the evaluation context so that installed extensions can be
// offered wherever the identity occurs.
//
// Construction is pure: building a tree never touches input text.
// Constructors panic on malformed static configuration (empty literal text,
// inverted bounds, missing children) — these are programmer errors, caught
// at grammar-authoring time rather than deferred into parsing.
package grammar
