package apiclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsync(t *testing.T) {
	release := make(chan struct{})
	p := Async(func() (*Response, error) {
		<-release
		return &Response{StatusCode: 201}, nil
	})

	select {
	case <-p.Done():
		t.Fatal("pending resolved before the call finished")
	default:
	}

	close(release)
	resp, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	// Wait is repeatable.
	resp2, err2 := p.Wait()
	assert.Same(t, resp, resp2)
	assert.NoError(t, err2)
}

func TestAsync_Error(t *testing.T) {
	want := errors.New("boom")
	p := Async(func() (*Response, error) { return nil, want })

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("pending never resolved")
	}
	_, err := p.Wait()
	assert.ErrorIs(t, err, want)
}

func TestGo(t *testing.T) {
	d, captured := captureServer(t, 200, `{"ok":true}`)

	p1 := Go(context.Background(), d, &Request{Method: http.MethodGet, Path: "/a/"})
	p2 := Go(context.Background(), d, &Request{Method: http.MethodGet, Path: "/b/"})

	_, err1 := p1.Wait()
	_, err2 := p2.Wait()
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Len(t, *captured, 2)
}
