// Package apitesting binds the TestHub API-testing endpoints under
// /api-testing.
//
// Every method issues exactly one request through the injected Doer and
// returns the raw response; decoding is left to the caller.
package apitesting

import (
	"github.com/testhub/testhub-go/pkg/apiclient"
)

// Family prefixes every endpoint name in this package.
const Family = "apitesting"

// Prefix is the path prefix shared by every endpoint in this package.
const Prefix = "/api-testing"

// Client exposes the API-testing bindings.
type Client struct {
	d apiclient.Doer
}

// New returns a client that dispatches through d.
func New(d apiclient.Doer) *Client {
	return &Client{d: d}
}

func endpoint(name, method, path string) apiclient.Endpoint {
	return apiclient.NewEndpoint(Family+"."+name, method, Prefix+path)
}
