package webquery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/dynctx"
)

func TestProvide_DecodesJSONDocument(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city": "Lisbon", "temp": 21}`))
	}))
	defer srv.Close()

	p := New("weather", srv.URL)
	defer func() { _ = p.Close() }()

	b := dynctx.NewBuilder()
	require.NoError(t, p.Provide(context.Background(), b))

	v, ok := b.Build().Lookup("weather")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("Lisbon"), v.GetAttr("city"))
	assert.True(t, cty.NumberIntVal(21).RawEquals(v.GetAttr("temp")), "numeric attributes decode as numbers")
}

func TestProvide_HTTPErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	p := New("weather", srv.URL)
	defer func() { _ = p.Close() }()

	b := dynctx.NewBuilder()
	err := p.Provide(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	_, ok := b.Build().Lookup("weather")
	assert.False(t, ok, "a failed fetch contributes nothing")
}

func TestProvide_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"broken`))
	}))
	defer srv.Close()

	p := New("weather", srv.URL)
	defer func() { _ = p.Close() }()

	err := p.Provide(context.Background(), dynctx.NewBuilder())
	assert.Error(t, err)
}

func TestProvide_UnreachableHost(t *testing.T) {
	t.Parallel()

	p := New("weather", "http://127.0.0.1:1/nothing")
	defer func() { _ = p.Close() }()

	err := p.Provide(context.Background(), dynctx.NewBuilder())
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "webquery:weather", New("weather", "http://example.com").Name())
}
