package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/testutil"
)

const tweetGrammar = `
phrase "tweet" {
	command = true
	root {
		sequence {
			child {
				literal {
					text     = "tweet "
					category = "verb"
				}
			}
			child {
				key = "message"
				freetext {
					category = "message"
					max      = 140
				}
			}
		}
	}
}
`

// Test for: full input completes with a synthesized mapping
func TestParse_TweetCompletes(t *testing.T) {
	t.Parallel()

	// --- Arrange / Act ---
	res := testutil.RunParse(t, map[string]string{"tweet.hcl": tweetGrammar}, "tweet hello")

	// --- Assert ---
	require.NoError(t, res.Err)
	require.NotNil(t, res.Step)
	assert.True(t, res.Step.Complete)
	require.Len(t, res.Step.Completed, 1)

	got := res.Step.Completed[0]
	assert.Equal(t, "tweet", got.Command)
	assert.Equal(t, "tweet hello", got.Text)
	msg, ok := got.Value.Mapping().Get("message")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("hello"), msg.Prim())
}

// Test for: partial input yields suggestions, not completions
func TestParse_PartialVerbSuggestsCompletion(t *testing.T) {
	t.Parallel()

	res := testutil.RunParse(t, map[string]string{"tweet.hcl": tweetGrammar}, "twe")

	require.NoError(t, res.Err)
	assert.False(t, res.Step.Complete)
	assert.Empty(t, res.Step.Completed)
	require.Len(t, res.Step.Candidates, 1)
	assert.Equal(t, "tweet ", res.Step.Candidates[0].Text)
	assert.Equal(t, "et ", res.Step.Candidates[0].Suffix)
}

// Test for: message length cap kills every interpretation
func TestParse_MessageOverCapDies(t *testing.T) {
	t.Parallel()

	long := "tweet "
	for i := 0; i < 141; i++ {
		long += "x"
	}
	res := testutil.RunParse(t, map[string]string{"tweet.hcl": tweetGrammar}, long)

	require.NoError(t, res.Err)
	assert.False(t, res.Step.Alive)
	assert.Empty(t, res.Step.Completed)
}

// Test for: ambiguous command prefixes fork per alternative
func TestParse_AmbiguousCommandsForkInManifestOrder(t *testing.T) {
	t.Parallel()

	grammar := `
phrase "post" {
	command = true
	root {
		sequence {
			child {
				literal {
					text  = "post "
					value = "to-blog"
				}
			}
			child {
				key = "body"
				freetext {
				}
			}
		}
	}
}

phrase "postpone" {
	command = true
	root {
		sequence {
			child {
				literal {
					text  = "post"
					value = "delay"
				}
			}
			child {
				key = "task"
				freetext {
				}
			}
		}
	}
}
`
	res := testutil.RunParse(t, map[string]string{"grammar.hcl": grammar}, "post it")

	require.NoError(t, res.Err)
	require.Len(t, res.Step.Completed, 2, "both readings of the input survive")
	assert.Equal(t, "post", res.Step.Completed[0].Command)
	body, _ := res.Step.Completed[0].Value.Mapping().Get("body")
	assert.Equal(t, cty.StringVal("it"), body.Prim())
	assert.Equal(t, "postpone", res.Step.Completed[1].Command)
	task, _ := res.Step.Completed[1].Value.Mapping().Get("task")
	assert.Equal(t, cty.StringVal(" it"), task.Prim())
}

// Test for: case folding on literals
func TestParse_CaseInsensitiveVerb(t *testing.T) {
	t.Parallel()

	res := testutil.RunParse(t, map[string]string{"tweet.hcl": tweetGrammar}, "TWEET hi")

	require.NoError(t, res.Err)
	require.Len(t, res.Step.Completed, 1)
	assert.Equal(t, "TWEET hi", res.Step.Completed[0].Text)
}
