package datetime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/dynctx"
)

func TestProvide_PinsTimestampAndDerivedLookups(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
	b := dynctx.NewBuilder()
	require.NoError(t, NewAt(at).Provide(context.Background(), b))
	ectx := b.Build()

	assert.Equal(t, at, ectx.Now())

	today, ok := ectx.Lookup("today")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("2024-03-01"), today)

	clock, ok := ectx.Lookup("time")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("12:30"), clock)
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "datetime", New().Name())
}
