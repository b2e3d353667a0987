// Package testhub ties the endpoint families to one shared dispatcher.
//
//	c := testhub.New("http://127.0.0.1:8000/api", apiclient.WithToken(tok))
//	resp, err := c.UIAutomation.RunTestSuite(ctx, 4, nil)
//
// Endpoints can also be invoked by name, which is what the CLI's generic
// call command does:
//
//	resp, err := c.Call(ctx, "apitesting.GetRequestHistory", "", apiclient.Params{"page": 2}, nil)
package testhub

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/testhub/testhub-go/pkg/agents"
	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/apitesting"
	"github.com/testhub/testhub-go/pkg/cliconfig"
	"github.com/testhub/testhub-go/pkg/uiautomation"
)

// ErrInvalidEndpoint is returned by Call for a name that is not in the table.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// Families lists the endpoint families in display order.
var Families = []string{apitesting.Family, uiautomation.Family, agents.Family}

var table = buildTable()

func buildTable() map[string]apiclient.Endpoint {
	m := map[string]apiclient.Endpoint{}
	for _, list := range [][]apiclient.Endpoint{apitesting.Endpoints, uiautomation.Endpoints, agents.Endpoints} {
		for _, ep := range list {
			if _, dup := m[ep.Name]; dup {
				panic("testhub: duplicate endpoint " + ep.Name)
			}
			m[ep.Name] = ep
		}
	}
	return m
}

// Client bundles every endpoint family around one Dispatcher.
type Client struct {
	APITesting   *apitesting.Client
	UIAutomation *uiautomation.Client
	Agents       *agents.Client

	d *apiclient.Dispatcher
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...apiclient.Option) *Client {
	return NewWithDispatcher(apiclient.New(baseURL, opts...))
}

// NewWithDispatcher wraps an existing dispatcher.
func NewWithDispatcher(d *apiclient.Dispatcher) *Client {
	return &Client{
		APITesting:   apitesting.New(d),
		UIAutomation: uiautomation.New(d),
		Agents:       agents.New(d),
		d:            d,
	}
}

// FromConfig builds a client from resolved configuration. opts are applied
// after the configured values.
func FromConfig(cfg *cliconfig.Config, opts ...apiclient.Option) (*Client, error) {
	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	base := []apiclient.Option{
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithUserAgent(cfg.UserAgent),
	}
	if token != "" {
		base = append(base, apiclient.WithToken(token))
	}
	return New(cfg.BaseURL, append(base, opts...)...), nil
}

// Dispatcher returns the shared dispatcher.
func (c *Client) Dispatcher() *apiclient.Dispatcher {
	return c.d
}

// Call dispatches the endpoint registered under name, e.g.
// "uiautomation.GetProjectDetail". id fills the path's {id} placeholder and
// must be empty for endpoints without one.
func (c *Client) Call(ctx context.Context, name, id string, params apiclient.Params, data any) (*apiclient.Response, error) {
	ep, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, name)
	}
	if ep.HasID() && id == "" {
		return nil, fmt.Errorf("%w: %s requires an id", apiclient.ErrInvalidRequest, name)
	}
	if !ep.HasID() && id != "" {
		return nil, fmt.Errorf("%w: %s does not take an id", apiclient.ErrInvalidRequest, name)
	}
	return ep.Call(ctx, c.d, id, params, data)
}

// Lookup finds an endpoint by its qualified name.
func Lookup(name string) (apiclient.Endpoint, bool) {
	ep, ok := table[name]
	return ep, ok
}

// Endpoints returns every endpoint sorted by name. A non-empty family limits
// the result to that family.
func Endpoints(family string) []apiclient.Endpoint {
	out := make([]apiclient.Endpoint, 0, len(table))
	for name, ep := range table {
		if family == "" || strings.HasPrefix(name, family+".") {
			out = append(out, ep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
