package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

// Response is a successful (2xx) reply. The body has already been read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Type       ResponseType
}

// Empty reports whether the server sent no body, e.g. on 204.
func (r *Response) Empty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r.Type == ResponseBinary {
		return ErrBinaryResponse
	}
	if r.Empty() {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// JSON decodes the body into generic maps and slices.
func (r *Response) JSON() (any, error) {
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Blob returns the raw body.
func (r *Response) Blob() []byte {
	return r.Body
}

// ContentType returns the media type of the body without parameters.
func (r *Response) ContentType() string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

// Filename returns the attachment filename announced by the server, if any.
func (r *Response) Filename() string {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}

// Page is the page-number pagination envelope returned by list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page follows.
func (p *Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// DecodePage decodes a list response. Unpaginated endpoints return a bare
// array, which is wrapped into a single page.
func DecodePage[T any](r *Response) (*Page[T], error) {
	body := bytes.TrimSpace(r.Body)
	if len(body) > 0 && body[0] == '[' {
		var items []T
		if err := r.Decode(&items); err != nil {
			return nil, err
		}
		return &Page[T]{Count: len(items), Results: items}, nil
	}

	var page Page[T]
	if err := r.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
