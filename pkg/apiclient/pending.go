package apiclient

import "context"

// Pending is the eventual outcome of a dispatch running in the background.
type Pending struct {
	done chan struct{}
	resp *Response
	err  error
}

// Async runs fn in its own goroutine and returns its pending outcome.
func Async(fn func() (*Response, error)) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.resp, p.err = fn()
	}()
	return p
}

// Go dispatches req through d in the background.
func Go(ctx context.Context, d Doer, req *Request) *Pending {
	return Async(func() (*Response, error) {
		return d.Do(ctx, req)
	})
}

// Done is closed once the outcome is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the dispatch finishes.
func (p *Pending) Wait() (*Response, error) {
	<-p.done
	return p.resp, p.err
}
