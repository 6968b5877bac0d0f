package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/incanto/internal/grammar"
)

func staticGen(text string) grammar.GenerateFunc {
	return grammar.Static(grammar.NewLiteral(text, ""))
}

func TestRegisterPhrase_DuplicateIsError(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("tweet", staticGen("tweet")))

	err := r.RegisterPhrase("tweet", staticGen("tweet again"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `phrase "tweet" already registered`)

	// The original registration stays intact.
	assert.Equal(t, []string{"tweet"}, r.Phrases())
}

func TestRegisterPhrase_RejectsEmptyIdentityAndNilGenerator(t *testing.T) {
	t.Parallel()

	r := New()
	assert.Error(t, r.RegisterPhrase("", staticGen("x")))
	assert.Error(t, r.RegisterPhrase("x", nil))
}

func TestRegisterExtension_SelfExtensionIsError(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("noun", staticGen("noun")))

	err := r.RegisterExtension("noun", "noun")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot extend itself`)
}

func TestRegisterExtension_Idempotent(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("noun", staticGen("noun")))
	require.NoError(t, r.RegisterPhrase("contact", staticGen("alice")))

	require.NoError(t, r.RegisterExtension("noun", "contact"))
	require.NoError(t, r.RegisterExtension("noun", "contact"))

	assert.Equal(t, []string{"contact"}, r.Snapshot().Resolve("noun"))
}

func TestRegisterExtension_RejectsEmptyEndpoints(t *testing.T) {
	t.Parallel()

	r := New()
	assert.Error(t, r.RegisterExtension("", "contact"))
	assert.Error(t, r.RegisterExtension("noun", ""))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("noun", staticGen("noun")))
	require.NoError(t, r.RegisterExtension("noun", "ghost-a"))
	require.NoError(t, r.RegisterExtension("missing-target", "ghost-b"))

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `extension target "missing-target" is not a registered phrase`)
	assert.Contains(t, err.Error(), `extension "ghost-a" of target "noun" is not a registered phrase`)
	assert.Contains(t, err.Error(), `extension "ghost-b" of target "missing-target" is not a registered phrase`)
}

func TestValidate_PassesOnParity(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("noun", staticGen("noun")))
	require.NoError(t, r.RegisterPhrase("contact", staticGen("alice")))
	require.NoError(t, r.RegisterExtension("noun", "contact"))
	assert.NoError(t, r.Validate())
}

func TestSnapshot_IsolatedFromLaterRegistration(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("noun", staticGen("noun")))
	snap := r.Snapshot()

	require.NoError(t, r.RegisterPhrase("contact", staticGen("alice")))
	require.NoError(t, r.RegisterExtension("noun", "contact"))

	_, ok := snap.Generator("contact")
	assert.False(t, ok, "a snapshot must not see phrases registered after it was taken")
	assert.Empty(t, snap.Resolve("noun"), "a snapshot must not see extensions registered after it was taken")

	// A fresh snapshot sees the additions.
	fresh := r.Snapshot()
	_, ok = fresh.Generator("contact")
	assert.True(t, ok)
	assert.Equal(t, []string{"contact"}, fresh.Resolve("noun"))
}

func TestSnapshot_ResolveIsNotTransitive(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("a", staticGen("a")))
	require.NoError(t, r.RegisterPhrase("b", staticGen("b")))
	require.NoError(t, r.RegisterPhrase("c", staticGen("c")))
	require.NoError(t, r.RegisterExtension("a", "b"))
	require.NoError(t, r.RegisterExtension("b", "c"))

	snap := r.Snapshot()
	assert.Equal(t, []string{"b"}, snap.Resolve("a"), "resolution must stop at direct extensions")
	assert.Equal(t, []string{"c"}, snap.Resolve("b"))
}

func TestSnapshot_ResolvePreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterPhrase("noun", staticGen("noun")))
	for _, id := range []string{"contact", "date", "url"} {
		require.NoError(t, r.RegisterPhrase(id, staticGen(id)))
		require.NoError(t, r.RegisterExtension("noun", id))
	}
	assert.Equal(t, []string{"contact", "date", "url"}, r.Snapshot().Resolve("noun"))
}
