// Package apiclient implements the request dispatcher shared by every TestHub
// endpoint binding.
//
// A binding never talks to net/http directly. It builds a Request from an
// Endpoint (method, path template, body shape, timeout, response type) and
// hands it to a Doer, normally a *Dispatcher:
//
//	d := apiclient.New("http://127.0.0.1:8000/api", apiclient.WithToken(tok))
//	resp, err := d.Do(ctx, &apiclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api-testing/histories/",
//	    Params: apiclient.Params{"page": 2},
//	})
//
// Every call issues exactly one HTTP request. There are no retries, no
// request de-duplication and no response caching. Any non-2xx status,
// transport failure or timeout is returned as an *APIError.
package apiclient
