// Package webquery provides a network-backed dynamic-data provider. It
// fetches a JSON document over HTTP at session setup and contributes the
// decoded value as a named lookup, demonstrating how slow external
// collaborators feed the evaluation context: the fetch happens once, before
// parsing, so dynamic nodes only ever see an immutable snapshot.
package webquery

import (
	"context"
	"fmt"

	ctyjson "github.com/zclconf/go-cty/cty/json"
	"resty.dev/v3"

	"github.com/vk/incanto/internal/dynctx"
)

// Provider implements provider.Provider.
type Provider struct {
	key    string
	url    string
	client *resty.Client
}

// New creates a webquery provider that stores the document at url under the
// lookup key.
func New(key, url string) *Provider {
	return &Provider{
		key:    key,
		url:    url,
		client: resty.New(),
	}
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return "webquery:" + p.key
}

// Provide fetches the document and contributes it as a lookup value. A
// failed fetch skips the contribution; parsing proceeds and any lookup node
// for the key simply yields no match.
func (p *Provider) Provide(ctx context.Context, b *dynctx.Builder) error {
	res, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return fmt.Errorf("webquery %q: fetching %s: %w", p.key, p.url, err)
	}
	if res.IsError() {
		return fmt.Errorf("webquery %q: fetching %s: status %s", p.key, p.url, res.Status())
	}
	body := []byte(res.String())
	ty, err := ctyjson.ImpliedType(body)
	if err != nil {
		return fmt.Errorf("webquery %q: implying type of response: %w", p.key, err)
	}
	v, err := ctyjson.Unmarshal(body, ty)
	if err != nil {
		return fmt.Errorf("webquery %q: decoding response: %w", p.key, err)
	}
	b.PutLookup(p.key, v)
	return nil
}

// Close releases the underlying HTTP client's resources.
func (p *Provider) Close() error {
	return p.client.Close()
}
