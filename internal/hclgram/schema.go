package hclgram

import "github.com/hashicorp/hcl/v2"

// Config is the merged content of all loaded grammar manifest files.
type Config struct {
	Phrases    []*PhraseBlock    `hcl:"phrase,block"`
	Extensions []*ExtensionBlock `hcl:"extension,block"`
}

// PhraseBlock declares one named phrase. Phrases marked command = true form
// the root alternation offered to the user; the rest are only reachable by
// reference or as extensions.
type PhraseBlock struct {
	Identity string     `hcl:"identity,label"`
	Command  bool       `hcl:"command,optional"`
	Root     *NodeBlock `hcl:"root,block"`
}

// ExtensionBlock installs one phrase as an extension of another.
type ExtensionBlock struct {
	Target  string `hcl:"target"`
	Extends string `hcl:"extends"`
}

// NodeBlock describes exactly one grammar node. Key is only meaningful for
// sequence children and argument nodes, where it routes the node's
// contribution into the folded result.
type NodeBlock struct {
	Key       string          `hcl:"key,optional"`
	Literal   *LiteralBlock   `hcl:"literal,block"`
	FreeText  *FreeTextBlock  `hcl:"freetext,block"`
	Lookup    *LookupBlock    `hcl:"lookup,block"`
	Sequence  *SequenceBlock  `hcl:"sequence,block"`
	Choice    *ChoiceBlock    `hcl:"choice,block"`
	Argument  *NodeBlock      `hcl:"argument,block"`
	PhraseRef *PhraseRefBlock `hcl:"phrase,block"`
}

// LiteralBlock matches fixed text. The optional value expression, when
// present, becomes the literal's contribution to the folded result; it must
// be a constant expression.
type LiteralBlock struct {
	Text      string         `hcl:"text"`
	Category  string         `hcl:"category,optional"`
	ValueExpr hcl.Expression `hcl:"value,optional"`
}

// FreeTextBlock consumes bounded arbitrary text. Min defaults to 1 rune;
// max = 0 means unbounded.
type FreeTextBlock struct {
	Category string `hcl:"category,optional"`
	Min      *int   `hcl:"min,optional"`
	Max      int    `hcl:"max,optional"`
}

// LookupBlock yields a value from the session's evaluation context without
// consuming input. The keys "clipboard" and "timestamp" are built in; any
// other key resolves against provider-contributed lookups.
type LookupBlock struct {
	Key      string `hcl:"key"`
	Category string `hcl:"category,optional"`
}

// SequenceBlock orders its children.
type SequenceBlock struct {
	Children []*NodeBlock `hcl:"child,block"`
}

// ChoiceBlock forks one derivation per option, in declaration order.
type ChoiceBlock struct {
	Options []*NodeBlock `hcl:"option,block"`
}

// PhraseRefBlock references a registered phrase by identity, resolved from
// the session's registry snapshot at derivation time.
type PhraseRefBlock struct {
	Identity string `hcl:"identity"`
}
