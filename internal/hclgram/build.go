package hclgram

import (
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/dynctx"
	"github.com/vk/incanto/internal/grammar"
)

// defaultFreeTextMin is the minimum rune count for freetext blocks that do
// not set one. A one-rune floor keeps an untouched argument slot from
// completing as empty text.
const defaultFreeTextMin = 1

// buildNode converts one NodeBlock into a grammar node. path names the
// block's position in the manifest for error messages.
func buildNode(b *NodeBlock, path string) (grammar.Node, error) {
	kinds := 0
	for _, set := range []bool{
		b.Literal != nil, b.FreeText != nil, b.Lookup != nil,
		b.Sequence != nil, b.Choice != nil, b.Argument != nil, b.PhraseRef != nil,
	} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, fmt.Errorf("%s: exactly one node kind required, found %d", path, kinds)
	}

	switch {
	case b.Literal != nil:
		return buildLiteral(b.Literal, path)

	case b.FreeText != nil:
		ft := b.FreeText
		minLen := defaultFreeTextMin
		if ft.Min != nil {
			minLen = *ft.Min
		}
		if minLen < 0 || ft.Max < 0 || (ft.Max > 0 && minLen > ft.Max) {
			return nil, fmt.Errorf("%s: invalid freetext bounds (min %d, max %d)", path, minLen, ft.Max)
		}
		return grammar.NewFreeText(ft.Category, minLen, ft.Max), nil

	case b.Lookup != nil:
		return buildLookup(b.Lookup, path)

	case b.Sequence != nil:
		if len(b.Sequence.Children) == 0 {
			return nil, fmt.Errorf("%s: sequence requires at least one child", path)
		}
		children := make([]grammar.Child, 0, len(b.Sequence.Children))
		for i, cb := range b.Sequence.Children {
			childPath := fmt.Sprintf("%s/sequence/child[%d]", path, i)
			node, err := buildNode(cb, childPath)
			if err != nil {
				return nil, err
			}
			children = append(children, grammar.Child{Key: cb.Key, Node: node})
		}
		return grammar.NewSequence(children...), nil

	case b.Choice != nil:
		if len(b.Choice.Options) == 0 {
			return nil, fmt.Errorf("%s: choice requires at least one option", path)
		}
		alts := make([]grammar.Node, 0, len(b.Choice.Options))
		for i, ob := range b.Choice.Options {
			optPath := fmt.Sprintf("%s/choice/option[%d]", path, i)
			if ob.Key != "" {
				return nil, fmt.Errorf("%s: choice options cannot carry keys", optPath)
			}
			node, err := buildNode(ob, optPath)
			if err != nil {
				return nil, err
			}
			alts = append(alts, node)
		}
		return grammar.NewChoice(alts...), nil

	case b.Argument != nil:
		if b.Argument.Key == "" {
			return nil, fmt.Errorf("%s: argument requires a key", path)
		}
		child, err := buildNode(&NodeBlock{
			Literal:   b.Argument.Literal,
			FreeText:  b.Argument.FreeText,
			Lookup:    b.Argument.Lookup,
			Sequence:  b.Argument.Sequence,
			Choice:    b.Argument.Choice,
			Argument:  b.Argument.Argument,
			PhraseRef: b.Argument.PhraseRef,
		}, path+"/argument")
		if err != nil {
			return nil, err
		}
		return grammar.NewArgument(b.Argument.Key, child), nil

	default: // b.PhraseRef != nil
		if b.PhraseRef.Identity == "" {
			return nil, fmt.Errorf("%s: phrase reference requires an identity", path)
		}
		return grammar.NewPhraseRef(b.PhraseRef.Identity), nil
	}
}

func buildLiteral(lb *LiteralBlock, path string) (grammar.Node, error) {
	if lb.Text == "" {
		return nil, fmt.Errorf("%s: literal text must not be empty", path)
	}
	lit := grammar.NewLiteral(lb.Text, lb.Category)
	if lb.ValueExpr != nil {
		v, diags := lb.ValueExpr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: literal value must be a constant expression: %s", path, diags.Error())
		}
		if !v.IsNull() {
			lit = lit.WithValue(v)
		}
	}
	return lit, nil
}

func buildLookup(lb *LookupBlock, path string) (grammar.Node, error) {
	if lb.Key == "" {
		return nil, fmt.Errorf("%s: lookup requires a key", path)
	}
	key := lb.Key
	name := "lookup:" + key
	var eval grammar.EvalFunc
	switch key {
	case "clipboard":
		eval = func(ctx *dynctx.Context) (cty.Value, error) {
			if ctx.Clipboard() == "" {
				return cty.NilVal, grammar.ErrNoMatch
			}
			return cty.StringVal(ctx.Clipboard()), nil
		}
	case "timestamp":
		eval = func(ctx *dynctx.Context) (cty.Value, error) {
			return cty.StringVal(ctx.Now().Format(time.RFC3339)), nil
		}
	default:
		eval = func(ctx *dynctx.Context) (cty.Value, error) {
			v, ok := ctx.Lookup(key)
			if !ok {
				return cty.NilVal, grammar.ErrNoMatch
			}
			return v, nil
		}
	}
	return grammar.NewDynamic(name, lb.Category, eval), nil
}
