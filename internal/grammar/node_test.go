package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/dynctx"
)

func TestConstructors_PanicOnMalformedConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		fn   func()
	}{
		{"empty literal text", func() { NewLiteral("", "verb") }},
		{"empty dynamic name", func() { NewDynamic("", "", func(*dynctx.Context) (cty.Value, error) { return cty.NilVal, nil }) }},
		{"nil dynamic eval", func() { NewDynamic("clip", "", nil) }},
		{"negative freetext min", func() { NewFreeText("", -1, 0) }},
		{"negative freetext max", func() { NewFreeText("", 0, -1) }},
		{"inverted freetext bounds", func() { NewFreeText("", 5, 3) }},
		{"empty sequence", func() { NewSequence() }},
		{"nil sequence child", func() { NewSequence(Child{Key: "x"}) }},
		{"empty keyed child key", func() { Keyed("", NewLiteral("a", "")) }},
		{"empty choice", func() { NewChoice() }},
		{"nil choice alternative", func() { NewChoice(nil) }},
		{"empty argument key", func() { NewArgument("", NewLiteral("a", "")) }},
		{"nil argument child", func() { NewArgument("k", nil) }},
		{"empty phrase identity", func() { NewPhrase("", Static(NewLiteral("a", ""))) }},
		{"nil phrase generator", func() { NewPhrase("p", nil) }},
		{"empty phrase ref identity", func() { NewPhraseRef("") }},
		{"nil static tree", func() { Static(nil) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, tc.fn)
		})
	}
}

func TestLiteral_WithValue(t *testing.T) {
	t.Parallel()

	base := NewLiteral("tweet", "verb")
	_, ok := base.Value()
	assert.False(t, ok, "a fresh literal should contribute no value")

	valued := base.WithValue(cty.StringVal("tweet"))
	v, ok := valued.Value()
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("tweet"), v)

	// WithValue copies; the original stays valueless.
	_, ok = base.Value()
	assert.False(t, ok)
}

func TestFreeText_UnboundedMax(t *testing.T) {
	t.Parallel()

	ft := NewFreeText("message", 0, 0)
	assert.Equal(t, 0, ft.MinLen)
	assert.Equal(t, 0, ft.MaxLen)
}

func TestStatic_IgnoresContext(t *testing.T) {
	t.Parallel()

	tree := NewLiteral("hi", "")
	gen := Static(tree)
	assert.Same(t, Node(tree), gen(nil))
	assert.Same(t, Node(tree), gen(dynctx.NewBuilder().Build()))
}
