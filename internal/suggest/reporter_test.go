package suggest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/incanto/internal/dynctx"
	"github.com/vk/incanto/internal/engine"
	"github.com/vk/incanto/internal/grammar"
)

func settled(root grammar.Node, input string) []engine.Thread {
	ctx := context.Background()
	deps := engine.Deps{Context: dynctx.NewBuilder().Build()}
	threads := engine.Settle(ctx, []engine.Thread{engine.Seed(root)}, deps)
	return engine.Advance(ctx, threads, input, deps)
}

func TestDescribe_LiteralSuffix(t *testing.T) {
	t.Parallel()

	rep := Describe(settled(grammar.NewLiteral("tweet", "verb"), "tw"))
	require.Len(t, rep.Candidates, 1)
	c := rep.Candidates[0]
	assert.Equal(t, "tweet", c.Text)
	assert.Equal(t, "eet", c.Suffix)
	assert.Equal(t, "verb", c.Category)
	assert.False(t, c.FreeText)
	assert.False(t, rep.Complete)
}

func TestDescribe_BeforeAnyInput(t *testing.T) {
	t.Parallel()

	root := grammar.NewChoice(
		grammar.NewLiteral("tweet", "verb"),
		grammar.NewLiteral("translate", "verb"),
	)
	rep := Describe(settled(root, ""))
	want := []Candidate{
		{Text: "tweet", Suffix: "tweet", Category: "verb"},
		{Text: "translate", Suffix: "translate", Category: "verb"},
	}
	if diff := cmp.Diff(want, rep.Candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe_DeduplicatesAcrossThreads(t *testing.T) {
	t.Parallel()

	// Both alternatives start with the same literal; the UI should see it
	// once.
	shared := grammar.NewLiteral("send", "verb")
	root := grammar.NewChoice(
		grammar.NewSequence(grammar.Pos(shared), grammar.Pos(grammar.NewLiteral(" mail", ""))),
		grammar.NewSequence(grammar.Pos(shared), grammar.Pos(grammar.NewLiteral(" sms", ""))),
	)
	rep := Describe(settled(root, ""))
	assert.Len(t, rep.Candidates, 1)
}

func TestDescribe_FreeTextSlot(t *testing.T) {
	t.Parallel()

	root := grammar.NewSequence(
		grammar.Pos(grammar.NewLiteral("tweet ", "verb")),
		grammar.Keyed("message", grammar.NewFreeText("message", 1, 0)),
	)
	rep := Describe(settled(root, "tweet "))
	require.Len(t, rep.Candidates, 1)
	c := rep.Candidates[0]
	assert.True(t, c.FreeText)
	assert.Equal(t, "message", c.Category)
	assert.Empty(t, c.Text)
	assert.False(t, rep.Complete, "the slot's minimum is not met yet")
}

func TestDescribe_CompleteWithOpenContinuations(t *testing.T) {
	t.Parallel()

	root := grammar.NewSequence(
		grammar.Pos(grammar.NewLiteral("tweet ", "verb")),
		grammar.Keyed("message", grammar.NewFreeText("message", 1, 0)),
	)
	rep := Describe(settled(root, "tweet hi"))
	assert.True(t, rep.Complete, "the input is submittable as-is")
	require.Len(t, rep.Candidates, 1, "and the slot still accepts more text")
	assert.True(t, rep.Candidates[0].FreeText)
}

func TestDescribe_EmptyThreadSet(t *testing.T) {
	t.Parallel()

	rep := Describe(nil)
	assert.False(t, rep.Complete)
	assert.Empty(t, rep.Candidates)
}
