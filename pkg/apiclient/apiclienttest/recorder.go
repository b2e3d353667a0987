// Package apiclienttest provides a recording Doer for binding tests.
package apiclienttest

import (
	"context"
	"sync"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// Recorder captures every Request it is handed and replies with a canned
// response or error.
type Recorder struct {
	mu       sync.Mutex
	requests []*apiclient.Request

	// Response is returned for every call when Err is nil. A nil Response
	// yields an empty 200.
	Response *apiclient.Response
	Err      error
}

// Do implements apiclient.Doer.
func (r *Recorder) Do(_ context.Context, req *apiclient.Request) (*apiclient.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Response != nil {
		return r.Response, nil
	}
	return &apiclient.Response{StatusCode: 200, Type: req.ResponseType}, nil
}

// Requests returns the captured requests in call order.
func (r *Recorder) Requests() []*apiclient.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*apiclient.Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// Last returns the most recent request, or nil.
func (r *Recorder) Last() *apiclient.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return nil
	}
	return r.requests[len(r.requests)-1]
}

// Reset forgets captured requests.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}
